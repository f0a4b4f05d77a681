package dbenum_test

import (
	"errors"
	"fmt"

	"github.com/xy-planning-network/dbenum"
)

func ExampleDefinition() {
	def := dbenum.MustDefine("Priority",
		dbenum.Choice{Value: "low", Label: "Low"},
		dbenum.Choice{Value: "high", Label: "High"},
	)

	fmt.Println(def.Values())
	fmt.Println(def.ColumnDeclaration())

	label, _ := def.Label("high")
	fmt.Println(label)

	_, err := def.StorageValue("urgent")
	var ive *dbenum.InvalidValueError
	fmt.Println(errors.As(err, &ive), ive.Value, ive.TypeName)

	v, err := def.StorageValue(nil)
	fmt.Println(v, err)
	// Output:
	// [low high]
	// ENUM('low', 'high')
	// High
	// true urgent Priority
	// <nil> <nil>
}

func ExampleEnum() {
	type post struct {
		Status   dbenum.Enum[statusEnum]
		Previous dbenum.NullEnum[statusEnum]
	}

	p := post{Status: "published"}
	status, _ := p.Status.Value()
	previous, _ := p.Previous.Value()
	fmt.Println(status, previous)

	p.Status = "archived"
	fmt.Println(p.Status.Valid())
	// Output:
	// published <nil>
	// invalid value "archived" for enum Status
}
