// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package portal

import (
	"net/http"
)

// register provided routes to http.ServerMux
func registerRoutes(
	mux *http.ServeMux,
	routes map[string]http.Handler,
) {
	for route, handler := range routes {
		mux.Handle(route, handler)
	}
}

func (p *Portal) addRoutes() map[string]http.Handler {
	routes := make(map[string]http.Handler)

	routes["GET /{lang}/posts"] = http.HandlerFunc(p.listPosts)
	routes["GET /{lang}/posts/{slug}"] = http.HandlerFunc(p.getPost)
	routes["GET /{lang}/glossary"] = http.HandlerFunc(p.listTerms)
	routes["GET /{lang}/glossary/{slug}"] = http.HandlerFunc(p.getTerm)
	routes["POST /newsletter"] = http.HandlerFunc(p.subscribe)
	routes["/"] = http.HandlerFunc(p.notFound)

	return routes
}
