package catalog

import "github.com/ahinestrog/bookorders/internal/money"

type Book struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Author      string      `json:"author"`
	Subject     string      `json:"subject"`
	Price       money.Money `json:"price"`
	CreatedUnix int64       `json:"-"`
}

// Field selects which book attribute a search criterion matches against.
type Field int

const (
	BySubject Field = iota + 1 // exact match
	ByAuthor                   // case-insensitive prefix
	ByTitle                    // case-insensitive substring
)

type Criterion struct {
	Field Field
	Term  string
}
