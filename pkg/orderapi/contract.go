package orderapi

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
)

//go:embed openapi.yaml
var contractDocument []byte

// ContractDocument returns the embedded OpenAPI document describing the API.
func ContractDocument() []byte {
	return append([]byte(nil), contractDocument...)
}

// Contract validates requests against the embedded OpenAPI document. It only
// checks structure (types, required keys, unknown keys); business rules are
// applied afterwards by order.Validate.
type Contract struct {
	doc   *openapi3.T
	place *routers.Route
}

// LoadContract parses and validates the embedded document.
func LoadContract(ctx context.Context) (*Contract, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(contractDocument)
	if err != nil {
		return nil, fmt.Errorf("orderapi: load contract: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("orderapi: invalid contract: %w", err)
	}

	item := doc.Paths.Find("/api/order")
	if item == nil || item.Post == nil {
		return nil, errors.New("orderapi: contract is missing POST /api/order")
	}
	return &Contract{
		doc: doc,
		place: &routers.Route{
			Spec:      doc,
			Path:      "/api/order",
			PathItem:  item,
			Method:    http.MethodPost,
			Operation: item.Post,
		},
	}, nil
}

// ContractError lists the structural problems found in a request body keyed
// by JSON path ("" for the document itself).
type ContractError struct {
	Fields map[string][]string
}

func (e *ContractError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for path, msgs := range e.Fields {
		label := path
		if label == "" {
			label = "body"
		}
		parts = append(parts, label+": "+strings.Join(msgs, ", "))
	}
	return "orderapi: request does not match contract: " + strings.Join(parts, "; ")
}

// ValidatePlaceOrder checks the request body of POST /api/order. The body is
// read and restored so later handlers can decode it again.
func (c *Contract) ValidatePlaceOrder(r *http.Request) error {
	input := &openapi3filter.RequestValidationInput{
		Request:    r,
		PathParams: map[string]string{},
		Route:      c.place,
		Options: &openapi3filter.Options{
			MultiError:         true,
			AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		},
	}
	err := openapi3filter.ValidateRequest(r.Context(), input)
	if err == nil {
		return nil
	}
	return &ContractError{Fields: collectContractIssues(err)}
}

func collectContractIssues(err error) map[string][]string {
	out := map[string][]string{}
	var walk func(error)
	walk = func(err error) {
		if err == nil {
			return
		}
		var multi openapi3.MultiError
		if errors.As(err, &multi) {
			for _, inner := range multi {
				walk(inner)
			}
			return
		}
		var schemaErr *openapi3.SchemaError
		if errors.As(err, &schemaErr) {
			path := strings.Join(schemaErr.JSONPointer(), "/")
			out[path] = append(out[path], schemaErr.Reason)
			return
		}
		var reqErr *openapi3filter.RequestError
		if errors.As(err, &reqErr) {
			if reqErr.Err != nil {
				if nested := collectContractIssues(reqErr.Err); !onlyGeneric(nested) {
					for k, v := range nested {
						out[k] = append(out[k], v...)
					}
					return
				}
			}
			out[""] = append(out[""], requestErrorReason(reqErr))
			return
		}
		out[""] = append(out[""], err.Error())
	}
	walk(err)
	return out
}

func onlyGeneric(issues map[string][]string) bool {
	if len(issues) == 0 {
		return true
	}
	_, ok := issues[""]
	return ok && len(issues) == 1
}

func requestErrorReason(err *openapi3filter.RequestError) string {
	if err.Reason != "" {
		return err.Reason
	}
	if err.Err != nil {
		return err.Err.Error()
	}
	return "invalid request body"
}
