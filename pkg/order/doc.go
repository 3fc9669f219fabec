// Package order holds the pizza order domain: the editable draft, the fixed
// topping catalog, size labels, field validation and the confirmation message
// shown after a successful submission.
//
// Everything here is pure and synchronous. Stateful form handling lives in
// pkg/orderform; transport lives in pkg/orderclient and pkg/orderapi.
package order
