package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/logrusorgru/aurora"

	"github.com/lukehollenback/fcsapi/exchange"
)

// printResponse writes the response body to out, indented when it is JSON, and reports failures on
// errOut. The request error is passed through so callers can return it directly.
func printResponse(out io.Writer, errOut io.Writer, resp exchange.Response, err error) error {
	if body := resp.Body(); len(body) > 0 {
		var buf bytes.Buffer

		if json.Indent(&buf, body, "", "  ") == nil {
			body = buf.Bytes()
		}

		fmt.Fprintln(out, string(body))
	}

	if err != nil {
		fmt.Fprintln(errOut, aurora.Red(resp.Message()))
	}

	return err
}
