package httpd

// Handler serves requests matched to a route. Many run concurrently; any
// shared state a handler touches through the request must be synchronized by
// the state's owner.
type Handler[S any] interface {
	Handle(req *Request[S]) (*Response, error)
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc[S any] func(req *Request[S]) (*Response, error)

func (f HandlerFunc[S]) Handle(req *Request[S]) (*Response, error) {
	return f(req)
}
