package services

import "context"

// clientIP pulls the caller's IP address from the request context. The
// auth middleware stores it under "clientIP"; background jobs carry none.
func clientIP(ctx context.Context) string {
	ip, _ := ctx.Value("clientIP").(string)
	return ip
}
