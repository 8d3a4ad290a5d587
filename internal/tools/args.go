package tools

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// floatArg extracts a numeric argument from a tool request. JSON
// numbers arrive as float64.
func floatArg(req mcp.CallToolRequest, key string) (float64, bool) {
	v, ok := req.GetArguments()[key].(float64)
	return v, ok
}

// intArg extracts an integer argument from a tool request, returning
// defaultVal if the key is missing or not a number.
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// strArg extracts a string argument from a tool request.
func strArg(req mcp.CallToolRequest, key string) string {
	v, _ := req.GetArguments()[key].(string)
	return v
}
