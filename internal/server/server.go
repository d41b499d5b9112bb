package server

// Сервер объединяет специфичные HTTP сервера, отвечающие за обработку конкретных сущностей.
type Server struct {
	QuoteServer
	ComparisonServer
	AskServer
	GlossaryServer
}

func NewServer(
	quoteServer QuoteServer,
	comparisonServer ComparisonServer,
	askServer AskServer,
	glossaryServer GlossaryServer,
) Server {
	return Server{
		QuoteServer:      quoteServer,
		ComparisonServer: comparisonServer,
		AskServer:        askServer,
		GlossaryServer:   glossaryServer,
	}
}
