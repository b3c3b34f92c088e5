package backend

import (
	"fmt"
	"strings"

	"github.com/wwwzhouhui/jimeng-mcp-server/pkg/tool"
)

const separator = "============================================================"

// shape converts a parsed 2xx backend response into an envelope using
// per-tool formatting. An empty data array is reported as failure even
// though the HTTP call succeeded; a success with nothing to show is
// never surfaced to callers.
func shape(req *tool.NormalizedRequest, resp *apiResponse) tool.Envelope {
	switch req.Tool {
	case "text_to_image":
		return shapeImages(resp)
	case "image_composition":
		return shapeComposition(req, resp)
	case "text_to_video", "image_to_video":
		return shapeVideos(req, resp)
	default:
		// Route table and registry are built from the same catalog, so
		// an unshaped tool cannot be dispatched.
		return tool.Failure(tool.ErrTransport, "no result shaping for tool: %s", req.Tool)
	}
}

func shapeImages(resp *apiResponse) tool.Envelope {
	urls := collectURLs(resp)
	if len(urls) == 0 {
		return tool.Failure(tool.ErrEmptyResult, "image generation failed: no URL returned")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Successfully generated %d image(s)\n\n", len(urls))
	b.WriteString("Image URLs:\n")
	b.WriteString(separator + "\n")
	for i, url := range urls {
		fmt.Fprintf(&b, "\nImage %d:\n%s\n", i+1, url)
	}
	b.WriteString("\n" + separator)
	b.WriteString("\n\nTip: open a URL in the browser to view the image")

	return tool.Success(tool.TextContent(b.String()))
}

func shapeComposition(req *tool.NormalizedRequest, resp *apiResponse) tool.Envelope {
	urls := collectURLs(resp)
	if len(urls) == 0 {
		return tool.Failure(tool.ErrEmptyResult, "image composition failed: no URL returned")
	}

	inputCount := len(stringSlice(req.Payload["images"]))
	if resp.InputImages != nil {
		inputCount = *resp.InputImages
	}
	compType := resp.CompositionType
	if compType == "" {
		compType = "composition"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Successfully composed %d input image(s) into %d result(s)\n", inputCount, len(urls))
	fmt.Fprintf(&b, "Composition type: %s\n\n", compType)
	b.WriteString("Composite image URLs:\n")
	b.WriteString(separator + "\n")
	for i, url := range urls {
		fmt.Fprintf(&b, "\nComposite image %d:\n%s\n", i+1, url)
	}
	b.WriteString("\n" + separator)
	b.WriteString("\n\nTip: open a URL in the browser to view the composite image")

	return tool.Success(tool.TextContent(b.String()))
}

func shapeVideos(req *tool.NormalizedRequest, resp *apiResponse) tool.Envelope {
	if len(resp.Data) == 0 {
		return tool.Failure(tool.ErrEmptyResult, "video generation failed: no URL returned")
	}

	prompt, _ := req.Payload["prompt"].(string)

	var b strings.Builder
	if req.Tool == "image_to_video" {
		fmt.Fprintf(&b, "Successfully generated %d video(s) from %d input image(s)\n\n",
			len(resp.Data), len(stringSlice(req.Payload["file_paths"])))
	} else {
		fmt.Fprintf(&b, "Successfully generated %d video(s)\n\n", len(resp.Data))
	}
	b.WriteString("Video URLs:\n")
	b.WriteString(separator + "\n")
	for i, item := range resp.Data {
		revised := item.RevisedPrompt
		if revised == "" {
			revised = prompt
		}
		fmt.Fprintf(&b, "\nVideo %d:\nURL: %s\nPrompt: %s\n", i+1, item.URL, revised)
	}
	b.WriteString("\n" + separator)
	b.WriteString("\n\nTip: open a URL in the browser to view the video")

	return tool.Success(tool.TextContent(b.String()))
}

func collectURLs(resp *apiResponse) []string {
	urls := make([]string, 0, len(resp.Data))
	for _, item := range resp.Data {
		if item.URL != "" {
			urls = append(urls, item.URL)
		}
	}
	return urls
}

// stringSlice reads a JSON array argument regardless of whether it
// arrived as []interface{} from a decoder or []string from Go callers.
func stringSlice(v interface{}) []string {
	switch vv := v.(type) {
	case []string:
		return vv
	case []interface{}:
		out := make([]string, 0, len(vv))
		for _, item := range vv {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
