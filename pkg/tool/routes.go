package tool

import "time"

// Route maps a tool to its backend endpoint and invocation timeout.
type Route struct {
	Endpoint string
	Timeout  time.Duration
}

// routes is the fixed per-tool endpoint/timeout table. The timeouts
// encode the backend's own polling bounds: image generation polls once
// per second with no hard cap, so the client timeout is the only
// backstop; composition polls for at most 600s, so the client must wait
// slightly longer to receive the terminal response; video generation is
// backend-bounded at 600s.
var routes = map[string]Route{
	"text_to_image":     {Endpoint: "/v1/images/generations", Timeout: 900 * time.Second},
	"image_composition": {Endpoint: "/v1/images/compositions", Timeout: 660 * time.Second},
	"text_to_video":     {Endpoint: "/v1/videos/generations", Timeout: 600 * time.Second},
	"image_to_video":    {Endpoint: "/v1/videos/generations", Timeout: 600 * time.Second},
}

// RouteFor returns the backend route for a tool name.
func RouteFor(name string) (Route, bool) {
	route, ok := routes[name]
	return route, ok
}
