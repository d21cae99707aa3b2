package conversion

import (
	"encoding/base64"
	"net/url"
	"strings"

	"github.com/turtacn/molforge/internal/domain/molecule"
)

// DefaultViewerBaseURL is the MolView instance that renders structures.
const DefaultViewerBaseURL = "https://molview.org/"

// DataURI embeds pdb in a data URI of type chemical/x-pdb.
func DataURI(pdb []byte) string {
	return "data:" + molecule.PDBMIMEType + ";base64," + base64.StdEncoding.EncodeToString(pdb)
}

// ViewerURL links a MolView page that loads pdb from an inline data URI. The
// data URI is query-escaped as a whole, so '+', '/' and '=' from the base64
// alphabet survive the round trip.
func ViewerURL(baseURL string, pdb []byte) string {
	if baseURL == "" {
		baseURL = DefaultViewerBaseURL
	}
	q := url.Values{}
	q.Set("inputFormat", "pdb")
	return strings.TrimRight(baseURL, "/") + "/?" + q.Encode() + "&structureUrl=" + url.QueryEscape(DataURI(pdb))
}

//Personal.AI order the ending
