package auth

import (
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// CookiePrefix is the prefix the identity provider uses for every cookie
// it sets. Tenant-specific names are built on top of it.
const CookiePrefix = "sb-"

// SameSite is the SameSite attribute of a cookie descriptor.
type SameSite string

const (
	SameSiteLax  SameSite = "lax"
	SameSiteNone SameSite = "none"
)

// CookieDescriptor is one concrete (name, domain, path, secure, samesite)
// combination targeted for deletion. Browsers key cookies by the full
// (name, domain, path) tuple, and a deletion only takes effect when it
// matches the attributes the cookie was originally set with.
type CookieDescriptor struct {
	Name     string
	Domain   string // empty means host-only
	Path     string
	Secure   bool
	SameSite SameSite
}

// attributeMatrix is the explicit (secure, samesite) deletion table.
// sameSite=none is only meaningful paired with secure=true, but the
// deletion set still issues the insecure pairing for completeness:
// attribute-matching rules differ across browsers and a single missed
// combination can leave a session cookie alive.
var attributeMatrix = []struct {
	Secure   bool
	SameSite SameSite
}{
	{Secure: false, SameSite: SameSiteLax},
	{Secure: false, SameSite: SameSiteNone},
	{Secure: true, SameSite: SameSiteLax},
	{Secure: true, SameSite: SameSiteNone},
}

// TenantRef extracts the tenant reference from the backend base URL:
// the first label of the hostname ("https://acme.supabase.co" -> "acme").
// Returns "" when the URL cannot be parsed or has no subdomain.
func TenantRef(baseURL string) string {
	host := hostOf(baseURL)
	if host == "" {
		return ""
	}
	label, rest, found := strings.Cut(host, ".")
	if !found || label == "" || rest == "" {
		return ""
	}
	return label
}

// TenantCookieNames returns the two cookie names the provider derives
// from its tenant reference. Empty when the tenant is unknown.
func TenantCookieNames(tenant string) []string {
	if tenant == "" {
		return nil
	}
	return []string{
		CookiePrefix + tenant + "-auth-token",
		CookiePrefix + tenant + "-refresh-token",
	}
}

// IsSessionCookieName reports whether a cookie name could hold session
// material: it begins with the provider prefix or contains a token
// suffix. Cookie names are tenant-specific, so logout must match by
// pattern rather than a fixed list.
func IsSessionCookieName(name string) bool {
	if name == "" {
		return false
	}
	return strings.HasPrefix(name, CookiePrefix) ||
		strings.Contains(name, "auth-token") ||
		strings.Contains(name, "refresh-token")
}

// DescriptorInput carries everything ResolveDescriptors needs.
type DescriptorInput struct {
	// Names are the session cookie names to expire, typically the union
	// of pattern-matched names from the request jar and the two
	// tenant-derived names.
	Names []string
	// RequestHost is the inbound request's Host header (may include a port).
	RequestHost string
	// BackendBaseURL is the configured identity backend base URL.
	BackendBaseURL string
}

// ResolveDescriptors enumerates every (name, domain, secure, samesite)
// combination that could hold one of the given cookies. The result is a
// superset of every attribute combination the application itself uses
// when setting session cookies, plus defensive combinations for
// localhost, loopback, and the backend's apex domain. Path is always the
// site root. Order is deterministic and entries are deduplicated.
func ResolveDescriptors(in DescriptorInput) []CookieDescriptor {
	domains := candidateDomains(in.RequestHost, in.BackendBaseURL)

	seen := make(map[CookieDescriptor]struct{})
	var out []CookieDescriptor
	for _, name := range in.Names {
		if name == "" {
			continue
		}
		for _, domain := range domains {
			for _, attr := range attributeMatrix {
				d := CookieDescriptor{
					Name:     name,
					Domain:   domain,
					Path:     "/",
					Secure:   attr.Secure,
					SameSite: attr.SameSite,
				}
				if _, dup := seen[d]; dup {
					continue
				}
				seen[d] = struct{}{}
				out = append(out, d)
			}
		}
	}
	return out
}

// candidateDomains builds the ordered domain set for deletion: host-only
// (empty), the request's bare hostname, the backend's apex domain, and
// the loopback names used during development.
func candidateDomains(requestHost, backendBaseURL string) []string {
	candidates := []string{
		"",
		BareHost(requestHost),
		ApexDomain(backendBaseURL),
		"localhost",
		"127.0.0.1",
	}

	seen := make(map[string]struct{})
	out := make([]string, 0, len(candidates))
	for i, d := range candidates {
		// Keep the host-only entry even though it is empty.
		if d == "" && i != 0 {
			continue
		}
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out
}

// BareHost strips any port from a Host header value.
func BareHost(host string) string {
	if host == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}

// ApexDomain returns the registrable (eTLD+1) domain of the backend base
// URL, or "" when it cannot be determined (IP literals, localhost,
// unparsable URLs).
func ApexDomain(baseURL string) string {
	host := hostOf(baseURL)
	if host == "" || net.ParseIP(host) != nil {
		return ""
	}
	apex, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return ""
	}
	return apex
}

func hostOf(baseURL string) string {
	if baseURL == "" {
		return ""
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return BareHost(u.Host)
}
