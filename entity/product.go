package entity

import (
	"strings"

	"github.com/habiliai/agenteval/errors"
)

// ProductDescription is the product being evaluated.
type ProductDescription struct {
	Name     string `json:"name" jsonschema:"required"`
	Domain   string `json:"domain" jsonschema:"required" jsonschema_description:"e.g. B2B SaaS, healthcare"`
	OneLiner string `json:"one_liner" jsonschema:"required"`
}

func (p ProductDescription) Validate() error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return errors.Wrapf(errors.ErrInvalidParams, "product name is required")
	case strings.TrimSpace(p.Domain) == "":
		return errors.Wrapf(errors.ErrInvalidParams, "product domain is required")
	case strings.TrimSpace(p.OneLiner) == "":
		return errors.Wrapf(errors.ErrInvalidParams, "product one_liner is required")
	}
	return nil
}

// String is the single line used in prompts and logs.
func (p ProductDescription) String() string {
	return p.Name + " (" + p.Domain + "). " + p.OneLiner
}
