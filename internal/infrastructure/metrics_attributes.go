package infrastructure

import (
	"go.opentelemetry.io/otel/attribute"
)

const (
	endpointKey = "posapi.endpoint"
	statusKey   = "status"
	outcomeKey  = "outcome"
	causeKey    = "cause"
	triggerKey  = "trigger"

	methodKey     = "http.request.method"
	routeKey      = "http.route"
	statusCodeKey = "http.response.status_code"
)

func EndpointAttr(endpoint string) attribute.KeyValue {
	return attribute.String(endpointKey, endpoint)
}

func StatusAttr(status string) attribute.KeyValue {
	return attribute.String(statusKey, status)
}

func OutcomeAttr(outcome string) attribute.KeyValue {
	return attribute.String(outcomeKey, outcome)
}

func CauseAttr(cause string) attribute.KeyValue {
	return attribute.String(causeKey, cause)
}

func TriggerAttr(trigger string) attribute.KeyValue {
	return attribute.String(triggerKey, trigger)
}

func MethodAttr(method string) attribute.KeyValue {
	return attribute.String(methodKey, method)
}

func RouteAttr(route string) attribute.KeyValue {
	return attribute.String(routeKey, route)
}

func StatusCodeAttr(code int) attribute.KeyValue {
	return attribute.Int(statusCodeKey, code)
}
