package providers

import (
	"time"
	"transcript/internal/structures"

	"github.com/gookit/validate"
	"github.com/m-mizutani/goerr/v2"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (c *CnfValidator) Validate() error {
	v := validate.Struct(c.conf)
	if !v.Validate() {
		return goerr.Wrap(v.Errors, "invalid config", goerr.V("path", c.conf.Path))
	}

	if c.conf.Timezone != "" {
		if _, err := time.LoadLocation(c.conf.Timezone); err != nil {
			return goerr.Wrap(err, "invalid config: unknown timezone", goerr.V("timezone", c.conf.Timezone))
		}
	}

	// ids are case sensitive, so duplicates can only be caught here
	seen := make(map[string]struct{}, len(c.conf.UserColors))
	for _, uc := range c.conf.UserColors {
		if _, dup := seen[uc.ID]; dup {
			return goerr.New("invalid config: user color listed twice", goerr.V("id", uc.ID))
		}
		seen[uc.ID] = struct{}{}
	}
	return nil
}
