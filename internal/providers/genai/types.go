package genai

import "strings"

// Content is one turn of a generateContent conversation.
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts,omitempty"`
}

// Part is a single text or binary element of a Content.
type Part struct {
	Text       string    `json:"text,omitempty"`
	InlineData *Blob     `json:"inlineData,omitempty"`
	FileData   *FileData `json:"fileData,omitempty"`
	Thought    bool      `json:"thought,omitempty"`
}

// Blob carries base64 encoded bytes inline.
type Blob struct {
	MimeType string `json:"mimeType,omitempty"`
	Data     string `json:"data,omitempty"`
}

// FileData references a file uploaded to the provider.
type FileData struct {
	MimeType string `json:"mimeType,omitempty"`
	FileURI  string `json:"fileUri,omitempty"`
}

// TextPart builds a text part.
func TextPart(text string) Part {
	return Part{Text: text}
}

// InlinePart builds a part carrying already base64 encoded data.
func InlinePart(mimeType, data string) Part {
	return Part{InlineData: &Blob{MimeType: mimeType, Data: data}}
}

// UserContent wraps parts in a single user turn.
func UserContent(parts ...Part) []Content {
	return []Content{{Role: "user", Parts: parts}}
}

// ThinkingConfig sets the reasoning budget for thinking-capable models.
type ThinkingConfig struct {
	ThinkingBudget int `json:"thinkingBudget"`
}

// ImageConfig controls image output geometry.
type ImageConfig struct {
	AspectRatio string `json:"aspectRatio,omitempty"`
	ImageSize   string `json:"imageSize,omitempty"`
}

// GenerationConfig groups generation options.
type GenerationConfig struct {
	CandidateCount     int             `json:"candidateCount,omitempty"`
	ResponseModalities []string        `json:"responseModalities,omitempty"`
	ThinkingConfig     *ThinkingConfig `json:"thinkingConfig,omitempty"`
	ImageConfig        *ImageConfig    `json:"imageConfig,omitempty"`
}

// GenerateContentRequest is the body of models/{model}:generateContent.
type GenerateContentRequest struct {
	Contents         []Content         `json:"contents"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
}

// Candidate is one completion returned by the model.
type Candidate struct {
	Content      Content `json:"content"`
	FinishReason string  `json:"finishReason,omitempty"`
}

// PromptFeedback reports a blocked prompt.
type PromptFeedback struct {
	BlockReason string `json:"blockReason,omitempty"`
}

// GenerateContentResponse is the answer to generateContent.
type GenerateContentResponse struct {
	Candidates     []Candidate     `json:"candidates"`
	PromptFeedback *PromptFeedback `json:"promptFeedback,omitempty"`
}

// Parts returns the parts of the first candidate.
func (r *GenerateContentResponse) Parts() []Part {
	if r == nil || len(r.Candidates) == 0 {
		return nil
	}
	return r.Candidates[0].Content.Parts
}

// Text concatenates the non-thought text parts of the first candidate.
func (r *GenerateContentResponse) Text() string {
	var b strings.Builder
	for _, part := range r.Parts() {
		if part.Thought || part.Text == "" {
			continue
		}
		b.WriteString(part.Text)
	}
	return b.String()
}

// FirstInlineData returns the first part carrying inline bytes.
func (r *GenerateContentResponse) FirstInlineData() (*Blob, bool) {
	for _, part := range r.Parts() {
		if part.InlineData != nil && part.InlineData.Data != "" {
			return part.InlineData, true
		}
	}
	return nil, false
}

// VideoImage is the conditioning frame of an image-to-video instance.
type VideoImage struct {
	BytesBase64Encoded string `json:"bytesBase64Encoded"`
	MimeType           string `json:"mimeType"`
}

// VideoInstance is one video prediction input.
type VideoInstance struct {
	Prompt string      `json:"prompt,omitempty"`
	Image  *VideoImage `json:"image,omitempty"`
}

// VideoParameters control the rendered video.
type VideoParameters struct {
	AspectRatio string `json:"aspectRatio,omitempty"`
	Resolution  string `json:"resolution,omitempty"`
	SampleCount int    `json:"sampleCount,omitempty"`
}

// PredictLongRunningRequest is the body of models/{model}:predictLongRunning.
type PredictLongRunningRequest struct {
	Instances  []VideoInstance  `json:"instances"`
	Parameters *VideoParameters `json:"parameters,omitempty"`
}

// Status is the error payload of a finished operation.
type Status struct {
	Code    int    `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// Operation is a provider-issued handle for an asynchronous job.
type Operation struct {
	Name     string            `json:"name"`
	Done     bool              `json:"done,omitempty"`
	Error    *Status           `json:"error,omitempty"`
	Response *OperationPayload `json:"response,omitempty"`
}

// OperationPayload is the result envelope of a finished video operation.
type OperationPayload struct {
	GenerateVideoResponse *GenerateVideoResponse `json:"generateVideoResponse,omitempty"`
}

// GenerateVideoResponse lists generated samples.
type GenerateVideoResponse struct {
	GeneratedSamples        []GeneratedSample `json:"generatedSamples,omitempty"`
	RAIMediaFilteredCount   int               `json:"raiMediaFilteredCount,omitempty"`
	RAIMediaFilteredReasons []string          `json:"raiMediaFilteredReasons,omitempty"`
}

// GeneratedSample is one rendered video.
type GeneratedSample struct {
	Video *VideoFile `json:"video,omitempty"`
}

// VideoFile points at a downloadable video.
type VideoFile struct {
	URI      string `json:"uri,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
}

// VideoURI returns the remote location of the first generated video.
func (o *Operation) VideoURI() string {
	if o == nil || o.Response == nil || o.Response.GenerateVideoResponse == nil {
		return ""
	}
	for _, sample := range o.Response.GenerateVideoResponse.GeneratedSamples {
		if sample.Video != nil && strings.TrimSpace(sample.Video.URI) != "" {
			return strings.TrimSpace(sample.Video.URI)
		}
	}
	return ""
}

// FilteredReasons returns the safety filter reasons attached to the result.
func (o *Operation) FilteredReasons() []string {
	if o == nil || o.Response == nil || o.Response.GenerateVideoResponse == nil {
		return nil
	}
	return o.Response.GenerateVideoResponse.RAIMediaFilteredReasons
}
