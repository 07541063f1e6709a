package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"
	"time"
)

//go:embed zones.tzdata
var defaultSource []byte

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the catalog compiled into the binary. It is compiled on first use
// for the current UTC year.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Load(bytes.NewReader(defaultSource), time.Now().UTC().Year())
		if err != nil {
			panic(fmt.Sprintf("catalog: embedded zones.tzdata: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}
