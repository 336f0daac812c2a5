package prompts

import "fmt"

// ============================================================================
// 梗检测提示词 (Meme detection prompts)
// ============================================================================

// textAnalysisTemplate instructs the model to return detected memes as a
// JSON array of {term, explanation, referenceUrl?} objects.
const textAnalysisTemplate = `请分析以下文本中包含的网络梗、流行用语或模因内容，并以JSON格式返回结果。
每个检测到的梗都应该包含：term（梗的名称）、explanation（详细解释）、referenceUrl（参考链接，可选）。

文本内容：
%s

请以以下JSON格式返回：
[
  {
    "term": "梗的名称",
    "explanation": "详细的解释，包括起源、含义和使用场景",
    "referenceUrl": "相关的参考链接（可选）"
  }
]

注意：
1. 如果没有检测到任何梗，请返回空数组 []
2. 解释要详细且易懂
3. 优先识别中文网络梗，也要识别英文梗
4. 每个梗的解释应该在50-200字之间
`

// videoAnalysisTemplate asks for meme detection based on what is knowable
// from a video link alone (title, platform, URL contents).
const videoAnalysisTemplate = `请分析以下视频链接可能包含的网络梗、流行用语或模因内容，并以JSON格式返回结果。
基于视频链接的标题、描述或已知内容进行分析。

视频链接：
%s

请以以下JSON格式返回：
[
  {
    "term": "梗的名称",
    "explanation": "详细的解释，包括起源、含义和使用场景",
    "referenceUrl": "相关的参考链接（可选）"
  }
]

注意：
1. 如果是YouTube链接，可以分析URL中的信息
2. 如果没有检测到任何梗，请返回空数组 []
3. 解释要详细且易懂
4. 可以基于常见的视频平台内容进行推测
`

// imageAsTextTemplate is the synthetic text content used for image
// submissions. Image analysis runs as text analysis over the image URL;
// pixel-level analysis is intentionally not performed.
const imageAsTextTemplate = "图片URL: %s"

// TextAnalysisPrompt builds the text-analysis prompt for the given content.
func TextAnalysisPrompt(text string) string {
	return fmt.Sprintf(textAnalysisTemplate, text)
}

// VideoAnalysisPrompt builds the video-analysis prompt for the given link.
func VideoAnalysisPrompt(videoURL string) string {
	return fmt.Sprintf(videoAnalysisTemplate, videoURL)
}

// ImageAsText builds the degraded text content embedding an image URL.
func ImageAsText(imageURL string) string {
	return fmt.Sprintf(imageAsTextTemplate, imageURL)
}
