package disguise

import seatsync "github.com/elliotttmiller/seatsync"

const (
	acceptHTML = "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8"
	acceptLang = "en-US,en;q=0.9"
)

// chromeHeaders returns the header set coherent with a Chromium-family
// identity on the given platform token.
func chromeHeaders(platform string) map[string]string {
	return map[string]string{
		"Accept":                    acceptHTML,
		"Accept-Language":           acceptLang,
		"Sec-Ch-Ua":                 `"Chromium";v="124", "Google Chrome";v="124", "Not-A.Brand";v="99"`,
		"Sec-Ch-Ua-Mobile":          "?0",
		"Sec-Ch-Ua-Platform":        platform,
		"Sec-Fetch-Dest":            "document",
		"Sec-Fetch-Mode":            "navigate",
		"Sec-Fetch-Site":            "none",
		"Upgrade-Insecure-Requests": "1",
	}
}

// geckoHeaders returns the header set coherent with a Firefox or
// Safari identity.
func geckoHeaders() map[string]string {
	return map[string]string{
		"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"Accept-Language":           acceptLang,
		"Upgrade-Insecure-Requests": "1",
	}
}

// DefaultPool returns the built-in pool of disguise profiles: realistic
// desktop browser identities across operating systems, each paired
// with a coherent header set. Profiles are shared read-only.
func DefaultPool() []*seatsync.DisguiseProfile {
	return []*seatsync.DisguiseProfile{
		{
			Identity: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
			Headers:  chromeHeaders(`"Windows"`),
		},
		{
			Identity: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
			Headers:  chromeHeaders(`"macOS"`),
		},
		{
			Identity: "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
			Headers:  chromeHeaders(`"Linux"`),
		},
		{
			Identity: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36 Edg/124.0.0.0",
			Headers:  chromeHeaders(`"Windows"`),
		},
		{
			Identity: "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:125.0) Gecko/20100101 Firefox/125.0",
			Headers:  geckoHeaders(),
		},
		{
			Identity: "Mozilla/5.0 (Macintosh; Intel Mac OS X 14.4; rv:125.0) Gecko/20100101 Firefox/125.0",
			Headers:  geckoHeaders(),
		},
		{
			Identity: "Mozilla/5.0 (X11; Ubuntu; Linux x86_64; rv:124.0) Gecko/20100101 Firefox/124.0",
			Headers:  geckoHeaders(),
		},
		{
			Identity: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
			Headers:  geckoHeaders(),
		},
	}
}
