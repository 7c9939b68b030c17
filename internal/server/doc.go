// Package server exposes pixel classification and connected-component
// labeling as MCP (Model Context Protocol) tools.
//
// Requests arrive as newline-delimited JSON-RPC 2.0 messages; Run reads them
// from stdin and answers on stdout, Serve does the same for any reader and
// writer. Logging never touches the protocol stream.
//
// Methods: initialize, tools/list, tools/call, ping. The
// notifications/initialized message is accepted without a reply.
//
// # Tools
//
// Inspecting an image before choosing thresholds:
//   - image_load, image_dimensions: size, format and color model
//   - image_sample_color, image_sample_colors_multi: RGB, HSL and luminance
//     at one or more points
//   - image_dominant_colors: most frequent quantized colors
//
// Classifying and labeling:
//   - image_classify_pixels: foreground count and optional mask
//   - image_connected_components: components in discovery order plus the
//     text report
//   - image_connected_components_sorted: largest first, optional top-N mask
//   - image_label_visualize: one color per component, ids optional
//   - image_crop_component: source pixels inside one component's bounds
//
// Every classifying tool accepts rule, upper_threshold and lower_threshold.
// Omitted values come from the Config passed to New.
//
// Decoded images are cached per path for the life of the server and decoded
// again when the file changes on disk.
//
// A failing tool yields error code -32000 with the Go error text in data.
// Malformed JSON yields -32700 and unknown methods -32601.
//
//	srv := server.New(cfg, log)
//	if err := srv.Run(); err != nil {
//	    return err
//	}
package server
