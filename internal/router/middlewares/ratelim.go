package middlewares

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/sethvargo/go-limiter/httplimit"
	"github.com/sethvargo/go-limiter/memorystore"
)

// RateLimiterConfig specifies a default rate limiting configuration, and optional custom rate limiting
// rules for particular routes, i.e: the routes spending master wallet funds can have a stricter limit.
type RateLimiterConfig struct {
	Default RateLimiterRouteConfig

	// RouteLimits is keyed by route template, e.g. /api/wallets/{address}/transfer.
	RouteLimits map[string]RateLimiterRouteConfig
}

// RateLimiterRouteConfig specifies the maximum request per interval, and
// interval length for a rate limiting rule.
type RateLimiterRouteConfig struct {
	MaxRPI   uint64
	Interval time.Duration
}

// RateLimitController creates a new middleware to rate limit requests.
// The rate limiting key is, in order of priority:
// 1. The wallet {address} of the request path.
// 2. The client ip found by ClientIP.
// 3. The first X-Forwarded-For ip included by a load-balancer, or the connection remote address.
func RateLimitController(cfg RateLimiterConfig) (mux.MiddlewareFunc, error) {
	defaultRL, err := createRateLimiter(cfg.Default)
	if err != nil {
		return nil, fmt.Errorf("creating default rate limiter: %s", err)
	}
	routeRLs := make(map[string]*httplimit.Middleware, len(cfg.RouteLimits))
	for route, routeCfg := range cfg.RouteLimits {
		routeRLs[route], err = createRateLimiter(routeCfg)
		if err != nil {
			return nil, fmt.Errorf("creating rate limiter for route %s: %s", route, err)
		}
	}

	return func(next http.Handler) http.Handler {
		defaultHandler := defaultRL.Handle(next)
		routeHandlers := make(map[string]http.Handler, len(routeRLs))
		for route, rl := range routeRLs {
			routeHandlers[route] = rl.Handle(next)
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if h, ok := routeHandlers[routeTemplate(r)]; ok {
				h.ServeHTTP(w, r)
				return
			}
			defaultHandler.ServeHTTP(w, r)
		})
	}, nil
}

func rateLimitKey(r *http.Request) (string, error) {
	if address := mux.Vars(r)["address"]; address != "" {
		return strings.ToLower(address), nil
	}

	ip, err := extractClientIP(r)
	if err != nil {
		return "", fmt.Errorf("extract client ip: %s", err)
	}
	return ip, nil
}

// routeTemplate returns the matched mux route template, or the raw path outside of a mux router.
func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return r.URL.Path
}

func createRateLimiter(cfg RateLimiterRouteConfig) (*httplimit.Middleware, error) {
	store, err := memorystore.New(&memorystore.Config{
		Tokens:   cfg.MaxRPI,
		Interval: cfg.Interval,
	})
	if err != nil {
		return nil, fmt.Errorf("creating memory store: %s", err)
	}
	m, err := httplimit.NewMiddleware(store, rateLimitKey)
	if err != nil {
		return nil, fmt.Errorf("creating http limiter: %s", err)
	}
	return m, nil
}

func extractClientIP(r *http.Request) (string, error) {
	if ip, ok := r.Context().Value(ContextIPAddress).(string); ok && ip != "" {
		return ip, nil
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0]), nil
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "", fmt.Errorf("getting ip from remote addr: %s", err)
	}
	return ip, nil
}

// ClientIP stores the client ip address in the request context.
func ClientIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, err := extractClientIP(r)
		if err == nil {
			r = r.WithContext(context.WithValue(r.Context(), ContextIPAddress, ip))
		}
		next.ServeHTTP(w, r)
	})
}
