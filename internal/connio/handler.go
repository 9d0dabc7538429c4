package connio

// Handler is the single application-supplied callback invoked per request:
// it is invoked once per plain HTTP request, and again once per inbound
// WebSocket data frame on an upgraded connection (with ctx.WS.InFrame set).
// The callback must populate ctx.Response (or call ctx.SendWSMessage) and
// then call ctx.Send exactly once for an HTTP request; failing to do so
// leaves the request unanswered.
type Handler func(ctx *HttpContext)
