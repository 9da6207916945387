package httpd

// Handler turns a fully-read Request into a Response. Handlers are
// expected to be pure with respect to the server: no retained
// references, errors translated into a Response rather than escaping.
type Handler interface {
	Serve(*Request) *Response
}

type HandlerFunc func(*Request) *Response

func (f HandlerFunc) Serve(r *Request) *Response {
	return f(r)
}

// Router maps exact (path, method) pairs to handlers. Registration
// happens once before the accept loop starts; after that the registry
// is read-only and safe for concurrent unlocked lookups. Paths are
// compared by exact string equality, as transmitted: no trailing-slash
// normalization, percent-decoding, or query stripping.
type Router struct {
	routes map[string]map[string]Handler
}

func NewRouter() *Router {
	return &Router{routes: make(map[string]map[string]Handler)}
}

// Handle registers h for (path, method). A later registration for the
// same pair replaces the earlier one.
func (ro *Router) Handle(path, method string, h Handler) {
	byMethod, ok := ro.routes[path]
	if !ok {
		byMethod = make(map[string]Handler)
		ro.routes[path] = byMethod
	}
	byMethod[method] = h
}

// HandleFunc registers f for (path, method).
func (ro *Router) HandleFunc(path, method string, f func(*Request) *Response) {
	ro.Handle(path, method, HandlerFunc(f))
}

// Resolve returns the handler registered for (path, method).
// ErrMethodNotAllowed means the path exists under another method,
// distinct from ErrNotFound for an unknown path.
func (ro *Router) Resolve(path, method string) (Handler, error) {
	byMethod, ok := ro.routes[path]
	if !ok {
		return nil, ErrNotFound
	}
	h, ok := byMethod[method]
	if !ok {
		return nil, ErrMethodNotAllowed
	}
	return h, nil
}
