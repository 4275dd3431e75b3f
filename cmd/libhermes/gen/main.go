// Command gen writes the exported shims of libhermes from the operation
// table of internal/boundary.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"os"
	"strings"
	"text/template"

	"github.com/jmylchreest/hermes/internal/boundary"
)

type param struct {
	Name string
}

type operation struct {
	Symbol    string
	Subscribe bool
	Message   bool
	Filters   []param
}

type data struct {
	Domains    []boundary.Domain
	Operations []operation
	Messages   []string
}

var tmpl = template.Must(template.New("exports").Parse(`// Code generated by go run ./gen; DO NOT EDIT.

package main

/*
#include "hermes.h"
*/
import "C"

import "unsafe"
{{range .Domains}}
//export {{.AccessorSymbol}}
func {{.AccessorSymbol}}(handler *C.CProtocolHandler, facade **C.CFacade) C.HERMES_RESULT {
	return accessor("{{.Name}}", handler, facade)
}

//export {{.DropSymbol}}
func {{.DropSymbol}}(facade *C.CFacade) C.HERMES_RESULT {
	return dropFacade("{{.Name}}", facade)
}
{{end}}{{range .Operations}}
//export {{.Symbol}}
{{- if .Subscribe}}
func {{.Symbol}}(facade *C.CFacade{{range .Filters}}, {{.Name}} *C.char{{end}}, handler C.hermes_callback) C.HERMES_RESULT {
	return subscribe("{{.Symbol}}", facade, handler{{range .Filters}}, unsafe.Pointer({{.Name}}){{end}})
}
{{- else}}
func {{.Symbol}}(facade *C.CFacade{{range .Filters}}, {{.Name}} *C.char{{end}}{{if .Message}}, message *C.char{{end}}) C.HERMES_RESULT {
	return publish("{{.Symbol}}", facade{{range .Filters}}, unsafe.Pointer({{.Name}}){{end}}{{if .Message}}, unsafe.Pointer(message){{end}})
}
{{- end}}
{{end}}{{range .Messages}}
//export hermes_drop_{{.}}_message
func hermes_drop_{{.}}_message(message *C.char) C.HERMES_RESULT {
	return dropMessage("{{.}}", message)
}
{{end}}`))

// camel turns a C parameter name such as site_id into siteID.
func camel(s string) string {
	parts := strings.Split(s, "_")
	for i := 1; i < len(parts); i++ {
		if parts[i] == "id" {
			parts[i] = "ID"
			continue
		}
		parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
	}
	return strings.Join(parts, "")
}

func main() {
	out := flag.String("o", "exports.go", "output file")
	flag.Parse()

	d := data{
		Domains:  boundary.Domains(),
		Messages: boundary.MessageKinds(),
	}
	for _, op := range boundary.Operations() {
		o := operation{
			Symbol:    op.Symbol(),
			Subscribe: op.Kind() == boundary.KindSubscribe,
			Message:   op.Message != "",
		}
		for _, f := range op.Filters {
			o.Filters = append(o.Filters, param{Name: camel(f)})
		}
		d.Operations = append(d.Operations, o)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, d); err != nil {
		fmt.Fprintf(os.Stderr, "gen: %v\n", err)
		os.Exit(1)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		fmt.Fprintf(os.Stderr, "gen: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, src, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "gen: %v\n", err)
		os.Exit(1)
	}
}
