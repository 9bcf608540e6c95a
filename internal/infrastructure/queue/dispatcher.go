package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/gadgetlab/store-api/internal/api/metrics"
	"github.com/gadgetlab/store-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	sendTimeout    = 30 * time.Second
)

// Dispatcher delivers confirmation emails asynchronously on a fixed set of
// workers, sharded by recipient address so one buyer's mails keep their
// order. Delivery is best-effort: failures are logged and counted, never
// propagated to the purchase that queued the mail.
type Dispatcher struct {
	workers []chan ports.MailJob
	mailer  ports.Mailer
	log     zerolog.Logger
	stop    chan struct{}
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, mailer ports.Mailer, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.MailJob, numWorkers),
		mailer:  mailer,
		log:     log,
		stop:    make(chan struct{}),
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.MailJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	go func() {
		<-ctx.Done()
		close(d.stop)
	}()
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a mail job to the worker responsible for its recipient. It
// never blocks: a full shard or a stopped dispatcher drops the job, counted
// as a failed delivery. Callers already treat mail as best-effort.
func (d *Dispatcher) Enqueue(job ports.MailJob) {
	select {
	case <-d.stop:
		d.drop(job, "dispatcher stopped")
		return
	default:
	}

	i := d.shardIndex(job.To)
	select {
	case d.workers[i] <- job:
		metrics.MailQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
	default:
		d.drop(job, "worker queue full")
	}
}

func (d *Dispatcher) drop(job ports.MailJob, reason string) {
	metrics.EmailsTotal.WithLabelValues("dropped").Inc()
	d.log.Warn().Str("to", job.To).Str("reason", reason).Msg("confirmation email dropped")
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *Dispatcher) shardIndex(to string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(to))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.MailJob) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			metrics.MailQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))

			sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
			err := d.mailer.Send(sendCtx, job.To, job.Subject, job.HTMLBody)
			cancel()

			if err != nil {
				metrics.EmailsTotal.WithLabelValues("failed").Inc()
				d.log.Error().Err(err).
					Str("to", job.To).
					Int("worker_id", id).
					Msg("confirmation email delivery failed")
				continue
			}
			metrics.EmailsTotal.WithLabelValues("sent").Inc()
			d.log.Debug().Str("to", job.To).Int("worker_id", id).Msg("confirmation email sent")
		}
	}
}
