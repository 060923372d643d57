package view

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// titleCaser upper-cases the first letter of a segment without lowering
// the rest, so "ownerId" becomes "OwnerId", not "Ownerid".
var titleCaser = cases.Title(language.Und, cases.NoLower)

// GroupName derives the public name of a group-by view: "kind" -> "byKind".
func GroupName(path string) string {
	return "by" + camel(path)
}

// IndexName derives the public name of an index-by view. Group and index
// views share the "by" prefix, so declaring both kinds on the same path is
// a name collision by construction.
func IndexName(path string) string {
	return "by" + camel(path)
}

// OrderName derives the public name of an order-by view:
// "priority" -> "inPriorityOrder".
func OrderName(path string) string {
	return "in" + camel(path) + "Order"
}

// camel joins the dot segments of a path, upper-casing the first letter of
// each: "owner.id" -> "OwnerId".
func camel(path string) string {
	var b strings.Builder
	for seg := range strings.SplitSeq(path, ".") {
		b.WriteString(titleCaser.String(seg))
	}
	return b.String()
}
