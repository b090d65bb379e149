// Package generator produces supportive free-text replies for analysis
// advice and chat.
//
// Three backend variants sit behind the Backend interface:
//   - Gemini: hosted generation via the Gemini API
//   - Local: autoregressive decoding over an exported JSON inference graph,
//     with temperature scaling and nucleus (top-p) sampling
//   - Static: two fixed supportive strings, never fails
//
// The strongest constructible variant is selected once at process start and
// serves every request for the process lifetime. Service wraps the selected
// backend with prompt construction and the sampling defaults from
// configuration.
package generator
