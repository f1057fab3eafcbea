package validate

import (
	"net/url"
	"regexp"
	"strings"

	"smartx/internal/domain"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reSlug  = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// PaymentMethods accepted by the checkout.
var PaymentMethods = map[string]bool{
	"pix":         true,
	"credit_card": true,
	"boleto":      true,
}

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 254 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// ID validates a record identifier (uuid, seed ids, nanoids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

func Slug(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) > 200 {
		return "", false
	}
	return s, reSlug.MatchString(s)
}

// Name validates a displayable product or offer name.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 120 {
		return "", false
	}
	return s, true
}

func Price(v float64) bool { return v >= 0 && v <= 1_000_000 }

func Percent(v float64) bool { return v >= 0 && v <= 100 }

// URL accepts an empty string or an absolute http(s) URL.
func URL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func ProductStatus(s domain.ProductStatus) bool {
	switch s {
	case domain.ProductPending, domain.ProductApproved, domain.ProductRejected:
		return true
	}
	return false
}

func PaymentMethodList(methods []string) bool {
	for _, m := range methods {
		if !PaymentMethods[m] {
			return false
		}
	}
	return true
}
