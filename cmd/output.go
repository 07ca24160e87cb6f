package cmd

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/PaesslerAG/jsonpath"
	"github.com/charmbracelet/glamour"
)

// output holds the flags of the commands printing a result.
type output struct {
	json  bool
	query string
}

func (o *output) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&o.json, "json", false, "print the result as JSON")
	f.StringVar(&o.query, "q", "", "JSONPath expression selecting a part of the JSON result, implies -json")
}

// print writes v as JSON, or the markdown returned by md.
func (o *output) print(w io.Writer, v any, md func() string) error {
	if !o.json && o.query == "" {
		printMarkdown(w, md())
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if o.query != "" {
		if data, err = query(data, o.query); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

// query applies a JSONPath expression to a JSON document.
func query(data []byte, path string) ([]byte, error) {
	var jobj any
	if err := json.Unmarshal(data, &jobj); err != nil {
		return nil, err
	}
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("invalid query %q: %w", path, err)
	}
	return json.Marshal(jval)
}

// printMarkdown renders markdown for the terminal, or writes it as is if it cannot be rendered.
func printMarkdown(w io.Writer, md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(w, out)
			return
		}
	}
	fmt.Fprint(w, md)
}
