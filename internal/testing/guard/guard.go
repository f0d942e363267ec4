package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("ACADEMICO_TEST_MODE") == "" {
			_ = os.Setenv("ACADEMICO_TEST_MODE", "1")
		}
	})
}
