package contract

const (
	ParamAPIBase     = "api_base"
	ParamAPIKey      = "api_key"
	ParamTemperature = "temperature"
	ParamMaxTokens   = "max_tokens"
	ParamTopP        = "top_p"
	ParamStop        = "stop"

	// ParamBaseURL is accepted as an alias of ParamAPIBase.
	ParamBaseURL = "base_url"
)

// Params are passthrough options for a completion call.
type Params map[string]any

// Normalize returns a copy with aliases renamed to the keys the completion client expects.
func (p Params) Normalize() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	if v, ok := out[ParamBaseURL]; ok {
		out[ParamAPIBase] = v
		delete(out, ParamBaseURL)
	}
	return out
}
