package service

import (
	"html/template"
	"strings"

	"github.com/gadgetlab/store-api/internal/core/domain"
)

const confirmationSubject = "Your order confirmation"

var confirmationTmpl = template.Must(template.New("confirmation").Parse(
	`<p>Your purchase was received. We're waiting for payment confirmation.</p>
<h3>Gadgets you bought:</h3>
<ul>
{{range .}}<li><span>{{.Model}}</span><br /><span>{{printf "%.2f" .Price}}</span></li>
{{end}}</ul>
`))

// confirmationBody renders the purchase summary sent to the buyer: the model
// name and price of every purchased product.
func confirmationBody(products []*domain.Product) (string, error) {
	var b strings.Builder
	if err := confirmationTmpl.Execute(&b, products); err != nil {
		return "", err
	}
	return b.String(), nil
}
