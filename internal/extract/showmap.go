package extract

import (
	"github.com/electronjoe/PhotoMap/internal/maplink"
)

// Browser opens a map link.
type Browser interface {
	Open(link string) error
}

// ShowOnMap builds <baseURL>/<decimal> for a successful result and, when
// open is set, hands it to b. The link is empty for any other outcome.
func ShowOnMap(r Result, baseURL string, open bool, b Browser) (string, error) {
	if !r.OK() {
		return "", nil
	}
	link, err := maplink.URL(baseURL, r.Decimal)
	if err != nil {
		return "", err
	}
	if open {
		if err := b.Open(link); err != nil {
			return link, err
		}
	}
	return link, nil
}
