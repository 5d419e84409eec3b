package contactform

import (
	"io/fs"

	"github.com/goliatone/go-contactform/pkg/renderers/html"
)

// RuntimeAssetsFS exposes the stylesheet and the reveal runtime script so Go
// applications can serve them without RegisterRoutes.
//
// Typical mount:
//
//	mux.Handle("/contact/assets/",
//	  http.StripPrefix("/contact/assets/",
//	    http.FileServerFS(contactform.RuntimeAssetsFS()),
//	  ),
//	)
func RuntimeAssetsFS() fs.FS {
	return html.AssetsFS()
}
