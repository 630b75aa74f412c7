package http

// Greeting is the body served at the root path.
const Greeting = "Hola Mundo!, ¡Servidor funcionando correctamente!"

// QueryRoute binds a GET path to the fixed statement it serves
type QueryRoute struct {
	Path      string
	Statement string
}

// DefaultRoutes are the catalog tables exposed by the gateway.
var DefaultRoutes = []QueryRoute{
	{Path: "/generos", Statement: "SELECT * FROM generos"},
	{Path: "/plataformas", Statement: "SELECT * FROM plataformas"},
	{Path: "/juegos", Statement: "SELECT * FROM juegos"},
}
