/*
Package form connects enumerations to the forms people fill out.

A [Guesser] inspects a GORM model and, for fields typed with an enumeration,
guesses a choice widget listing the enumeration's labels.
Nullable columns are not required and offer a blank, localized placeholder option.

A [Parser] decodes submitted form values or JSON into a struct
and validates it, including the "enum" rule for enumeration values.
Validation failures are [ValidationErrors], which unwrap to dbenum.ErrNotValid.

[FuncMap] exposes labels and choices to html/template.
*/
package form
