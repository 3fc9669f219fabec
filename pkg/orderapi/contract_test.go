package orderapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestContract_ValidatePlaceOrder(t *testing.T) {
	contract, err := LoadContract(context.Background())
	if err != nil {
		t.Fatalf("load contract: %v", err)
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"full_name":"Ada","size":"S","toppings":["1"]}`},
		{name: "business rules are not structural", body: `{"full_name":"A","size":"XXL"}`},
		{name: "missing size", body: `{"full_name":"Ada"}`, wantErr: true},
		{name: "unknown property", body: `{"full_name":"Ada","size":"S","crust":"thin"}`, wantErr: true},
		{name: "toppings not strings", body: `{"full_name":"Ada","size":"S","toppings":[1]}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/order", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			err := contract.ValidatePlaceOrder(req)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var cerr *ContractError
			if !errors.As(err, &cerr) {
				t.Fatalf("expected ContractError, got %v", err)
			}
			if len(cerr.Fields) == 0 {
				t.Fatalf("expected issues to be reported")
			}
		})
	}
}

func TestContractDocumentIsCopy(t *testing.T) {
	doc := ContractDocument()
	doc[0] = 'X'
	if ContractDocument()[0] == 'X' {
		t.Fatalf("expected ContractDocument to return a copy")
	}
}
