package util

import (
	"net/http"
	"net/url"
)

// NewProxyFunc builds a transport proxy selector from explicit proxy URLs.
// With both empty the standard environment variables apply, so existing
// HTTP_PROXY setups keep working without flags.
func NewProxyFunc(httpProxy, httpsProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	return func(req *http.Request) (*url.URL, error) {
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}
