package server

import "github.com/ironsheep/pixel-regions/internal/classify"

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

// classifyProperties returns the schema properties shared by every tool that
// classifies pixels, merged with extra.
func classifyProperties(extra map[string]interface{}) map[string]interface{} {
	props := map[string]interface{}{
		"path": pathProperty(),
		"rule": map[string]interface{}{
			"type":        "string",
			"enum":        classify.RuleNames(),
			"description": "Pixel rule: red (R>upper, G<lower, B<lower), cyan (R<upper, G>lower, B>lower), mask (R>=255), hue (HSL hue between lower and upper degrees), luminance (grey level >= upper). Default from server config.",
		},
		"upper_threshold": map[string]interface{}{
			"type":        "number",
			"description": "Upper threshold, 0-255 (degrees 0-360 for hue). Default from server config (100).",
		},
		"lower_threshold": map[string]interface{}{
			"type":        "number",
			"description": "Lower threshold, 0-255 (degrees 0-360 for hue). Default from server config (50).",
		},
	}
	for k, v := range extra {
		props[k] = v
	}
	return props
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format. The decoded image is cached for subsequent operations.",
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

		// Color Operations
		{
			Name:        "image_sample_color",
			Description: "Get the color at a pixel as hex, RGB, HSL and luminance. Use it to pick classification thresholds.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "image_sample_colors_multi",
			Description: "Sample colors at multiple points in one call. Each point may carry a label.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"points": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x":     map[string]interface{}{"type": "integer"},
								"y":     map[string]interface{}{"type": "integer"},
								"label": map[string]interface{}{"type": "string"},
							},
							"required": []string{"x", "y"},
						},
						"description": "Points to sample",
					},
				},
				"required": []string{"path", "points"},
			},
		},
		{
			Name:        "image_dominant_colors",
			Description: "Return the most common colors in the image or a region, quantized to steps of 16 per channel.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Number of colors to return. Default 5",
						"default":     5,
					},
					"region": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"x1": map[string]interface{}{"type": "integer"},
							"y1": map[string]interface{}{"type": "integer"},
							"x2": map[string]interface{}{"type": "integer"},
							"y2": map[string]interface{}{"type": "integer"},
						},
						"required":    []string{"x1", "y1", "x2", "y2"},
						"description": "Optional region (x2/y2 exclusive). Default whole image",
					},
				},
				"required": []string{"path"},
			},
		},

		// Classification and Labeling
		{
			Name:        "image_classify_pixels",
			Description: "Classify every pixel with a rule and report how many are foreground. Optionally save the white-on-black mask or return it as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": classifyProperties(map[string]interface{}{
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional path to save the mask (extension picks the format)",
					},
					"include_mask": map[string]interface{}{
						"type":        "boolean",
						"description": "Return the mask as base64 PNG. Default false",
						"default":     false,
					},
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_connected_components",
			Description: "Classify pixels, then label 8-connected foreground regions. Returns each component's id, pixel count and bounding box in discovery order plus the text report.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": classifyProperties(map[string]interface{}{
					"report_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional path to write the text report",
					},
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_connected_components_sorted",
			Description: "Like image_connected_components but ordered by pixel count, largest first. Optionally saves a mask of the top N components.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": classifyProperties(map[string]interface{}{
					"top_n": map[string]interface{}{
						"type":        "integer",
						"description": "Number of largest components to keep. Default from server config (2)",
					},
					"report_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional path to write the sorted text report",
					},
					"top_image_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional path to save the mask of the top N components",
					},
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_label_visualize",
			Description: "Render the labeled components with one color each and return base64 PNG. Optionally draws component ids.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": classifyProperties(map[string]interface{}{
					"annotate": map[string]interface{}{
						"type":        "boolean",
						"description": "Draw each component id at the center of its bounding box. Default false",
						"default":     false,
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional path to also save the rendering",
					},
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_crop_component",
			Description: "Crop the bounding box of one labeled component from the source image and return it as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": classifyProperties(map[string]interface{}{
					"id": map[string]interface{}{
						"type":        "integer",
						"description": "Component id (1-based, discovery order)",
					},
					"padding": map[string]interface{}{
						"type":        "integer",
						"description": "Pixels added on every side, clamped to the image. Default 0",
						"default":     0,
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 2.0 to double size). Default 1.0",
						"default":     1.0,
					},
				}),
				"required": []string{"path", "id"},
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
