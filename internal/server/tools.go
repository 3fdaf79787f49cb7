package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_clear_cache",
			Description: "Drop cached images so the inspection tools re-read files from disk. With a path only that image is evicted; without one the whole cache is cleared.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Image to evict. Omit to clear every cached image",
					},
				},
			},
		},

		// Pipeline Stages
		{
			Name:        "image_edge_detect",
			Description: "Run the measurement preprocessor (grayscale, 5x5 Gaussian blur, Canny) and return the binary edge map as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"threshold_low": map[string]interface{}{
						"type":        "integer",
						"description": "Canny hysteresis low threshold. Default 100",
						"default":     100,
					},
					"threshold_high": map[string]interface{}{
						"type":        "integer",
						"description": "Canny hysteresis high threshold. Default 200",
						"default":     200,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_find_contours",
			Description: "Trace every contour of the image's edge map and report, per contour, its point count, area, open arc length, closed perimeter and minimal enclosing circle (all in pixels). Also returns the index of the largest-area contour, which measurement uses as the reference object.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"include_points": map[string]interface{}{
						"type":        "boolean",
						"description": "Include the compressed contour points in the result. Default false",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_calibrate_scale",
			Description: "Compute the pixel to real-world scaling factor from the largest contour. reference_dimension is that object's real-world perimeter (for a circle, its circumference).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"reference_dimension": map[string]interface{}{
						"type":        "number",
						"description": "Real-world perimeter of the largest object in the image",
					},
				},
				"required": []string{"path", "reference_dimension"},
			},
		},

		// Measurement
		{
			Name:        "image_measure_dimensions",
			Description: "Measure radii and arc lengths of circular and arc-shaped features, scaled by a reference object of known perimeter. Writes an annotated image and a CSV table and returns the numbered results (circles first, then arcs).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"reference_dimension": map[string]interface{}{
						"type":        "number",
						"description": "Real-world perimeter of the largest object in the image. If omitted every measurement is 0",
					},
					"output_table_path": map[string]interface{}{
						"type":        "string",
						"description": "Where to write the CSV table. Default: a unique file in the server's output directory",
					},
					"output_image_path": map[string]interface{}{
						"type":        "string",
						"description": "Where to write the annotated image (format from extension). Default: a unique PNG in the server's output directory",
					},
					"min_radius": map[string]interface{}{
						"type":        "number",
						"description": "Minimum circle radius in real-world units. Negative disables the filter. Default 1",
						"default":     1,
					},
					"min_arc_length": map[string]interface{}{
						"type":        "number",
						"description": "Minimum arc length in real-world units. Negative disables the filter. Default 2",
						"default":     2,
					},
				},
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
