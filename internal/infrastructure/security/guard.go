package security

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/accounts-api/internal/application/ports"
)

var _ ports.SecurityGuard = (*Guard)(nil)

// Patrones de User-Agent que se tratan como tráfico automatizado.
var botUASignatures = []string{
	"bot", "crawler", "spider", "scrapy", "curl/", "wget/",
	"python-requests", "go-http-client", "headlesschrome", "phantomjs",
}

// Firmas de inyección habituales en path/query que el shield bloquea.
var shieldSignatures = []string{
	"../", "..\\", "<script", "union select", "union+select",
	"/etc/passwd", "%00", "' or '1'='1",
}

// Guard implementación in-process del puerto SecurityGuard: detección de bots por
// User-Agent, shield por firmas de ataque y rate limit con ventana deslizante de
// un minuto por clave rol:ip (conteo de ventana previa ponderado, estilo Cloudflare).
type Guard struct {
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket
}

// bucket conserva el conteo de la ventana actual y la anterior para una clave.
type bucket struct {
	windowStart time.Time
	current     int
	previous    int
}

// NewGuard construye el guard con ventana de un minuto y reloj de sistema.
func NewGuard() *Guard {
	return NewGuardWithClock(time.Now)
}

// NewGuardWithClock construye el guard con un reloj inyectado, para controlar
// la ventana deslizante desde los tests.
func NewGuardWithClock(now func() time.Time) *Guard {
	return &Guard{
		window:  time.Minute,
		now:     now,
		buckets: make(map[string]*bucket),
	}
}

// Protect clasifica la petición: bot → shield → rate limit, en ese orden.
// El conteo de la ventana solo avanza cuando la petición no fue negada por
// bot o shield (igual que el servicio original, que corta antes de contar).
func (g *Guard) Protect(ctx context.Context, req ports.RequestInfo, role string, limit int) (ports.Decision, error) {
	if err := ctx.Err(); err != nil {
		return ports.Decision{}, err
	}

	if isBot(req.UserAgent) {
		return ports.Decision{Allowed: false, Reason: ports.DenyReasonBot}, nil
	}
	if shieldBlocks(req.Path, req.Query) {
		return ports.Decision{Allowed: false, Reason: ports.DenyReasonShield}, nil
	}
	if limit > 0 && !g.take(role+":"+req.IP, limit) {
		return ports.Decision{Allowed: false, Reason: ports.DenyReasonRateLimit}, nil
	}
	return ports.Decision{Allowed: true}, nil
}

// take registra un hit en la clave y decide si cabe dentro del techo.
// El estimado deslizante es: previous * fracción restante de la ventana anterior + current.
func (g *Guard) take(key string, limit int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	b, ok := g.buckets[key]
	if !ok {
		b = &bucket{windowStart: now}
		g.buckets[key] = b
	}

	elapsed := now.Sub(b.windowStart)
	switch {
	case elapsed >= 2*g.window:
		// Ambas ventanas quedaron atrás
		b.windowStart = now
		b.previous = 0
		b.current = 0
	case elapsed >= g.window:
		b.windowStart = b.windowStart.Add(g.window)
		b.previous = b.current
		b.current = 0
		elapsed = now.Sub(b.windowStart)
	}

	weight := 1 - float64(elapsed)/float64(g.window)
	estimated := float64(b.previous)*weight + float64(b.current)

	if estimated >= float64(limit) {
		return false
	}
	b.current++
	return true
}

func isBot(userAgent string) bool {
	ua := strings.ToLower(userAgent)
	if ua == "" {
		return true // sin User-Agent se trata como automatizado
	}
	for _, sig := range botUASignatures {
		if strings.Contains(ua, sig) {
			return true
		}
	}
	return false
}

func shieldBlocks(path, query string) bool {
	target := strings.ToLower(path + "?" + query)
	for _, sig := range shieldSignatures {
		if strings.Contains(target, sig) {
			return true
		}
	}
	return false
}
