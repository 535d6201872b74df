// Package geoip resolves request IPs to country codes for audit provenance.
package geoip

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"
)

// Client provides IP geolocation lookup.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a GeoIP client.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// ipAPIResponse is the payload from ip-api.com.
type ipAPIResponse struct {
	Status      string `json:"status"`
	CountryCode string `json:"countryCode"`
	Message     string `json:"message"`
}

// LookupCountry returns the ISO 3166-1 alpha-2 country code for an IP, or
// the empty string when the lookup fails. Private/local IPs fall back to the
// server's public IP, which is what a local development setup wants.
func (c *Client) LookupCountry(ctx context.Context, ip string) string {
	ip = strings.TrimSpace(ip)

	// ip-api.com is free without a key, 45 requests/minute.
	var url string
	if ip == "" || isPrivateIP(ip) {
		url = "http://ip-api.com/json/?fields=status,countryCode,message"
	} else {
		url = fmt.Sprintf("http://ip-api.com/json/%s?fields=status,countryCode,message", ip)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ""
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}
	var result ipAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return ""
	}
	if result.Status != "success" {
		return ""
	}
	return result.CountryCode
}

// isPrivateIP reports whether the address is private, loopback or link-local.
func isPrivateIP(ipStr string) bool {
	ip := net.ParseIP(ipStr)
	if ip == nil {
		return true
	}
	if ip.IsLoopback() || ip.IsPrivate() {
		return true
	}
	return ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast()
}

// GetClientIP extracts the client IP from the request: X-Forwarded-For
// first, then X-Real-IP, then RemoteAddr.
func GetClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if len(parts) > 0 {
			if ip := strings.TrimSpace(parts[0]); ip != "" {
				return ip
			}
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
