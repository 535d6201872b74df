package server

import (
	"github.com/gin-gonic/gin"

	"github.com/legit-games/admin-rbac/geoip"
	"github.com/legit-games/admin-rbac/rbac"
)

// provenanceFrom collects request origin details for audit entries. Country
// lookup is best-effort; a failed lookup leaves the field unset.
func (s *Server) provenanceFrom(c *gin.Context) rbac.Provenance {
	p := rbac.Provenance{}
	ip := geoip.GetClientIP(c.Request)
	if ip != "" {
		p.IPAddress = &ip
	}
	if ua := c.Request.UserAgent(); ua != "" {
		p.UserAgent = &ua
	}
	if s.geo != nil && ip != "" {
		if country := s.geo.LookupCountry(c.Request.Context(), ip); country != "" {
			p.Country = &country
		}
	}
	return p
}
