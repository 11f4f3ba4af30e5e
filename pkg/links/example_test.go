package links_test

import (
	"fmt"

	"github.com/matzehuels/pthscan/pkg/links"
)

func ExampleExtract() {
	page := []byte(`<html><body>
<a href="/simple/requests/">requests</a>
<a href="/simple/six/">six</a>
</body></html>`)

	hrefs, err := links.Extract(page)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	for _, h := range hrefs {
		fmt.Println(h)
	}
	// Output:
	// /simple/requests/
	// /simple/six/
}
