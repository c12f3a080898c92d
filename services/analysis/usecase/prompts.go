package usecase

const summaryPrompt = `
You are an AI that generates meeting summaries for a professional %[1]s analysis product.

STRICT RULES (must be followed):
- Output PLAIN TEXT only
- Do NOT use markdown
- Do NOT use bold, italics, headings, or lists
- Do NOT use bullet points or numbering
- Do NOT use symbols such as *, _, #, -, >, or backticks
- Do NOT add extra line breaks
- Write a single clear paragraph only

STYLE GUIDELINES:
- Use clear, simple, professional language
- Assume the reader is a busy non-technical stakeholder
- Avoid jargon and complex sentences
- Be concise and accurate

TASK:
Summarize the following %[1]s by capturing the main discussion points, decisions, and outcomes.

Transcript:
%[2]s

Before responding, double-check that the output follows all rules above. If not, rewrite it as plain text.
`

const highlightsPrompt = `
You are an AI assistant extracting highlights from a %[1]s.

Definition:
Highlights are important points, insights, concerns, or notable moments from the conversation.
They provide context and understanding but do NOT require follow-up actions.

Rules:
- Extract only notable or meaningful points from the conversation
- Do NOT include action items or tasks
- Do NOT include decisions or approvals
- Do NOT summarize the entire %[1]s
- Do NOT invent information
- Highlights must be directly supported by the transcript
- Output as a bullet list
- If no clear highlights exist, say: "No notable highlights identified."

Transcript:
%[2]s
`

const tonePrompt = `
You are a conversation analyst. Analyze the following %[1]s transcript.
Return ONLY a valid JSON object with the following structure:
{
  "tone": "string",
  "sentiment": "positive | neutral | negative | mixed",
  "emotions": ["string"],
  "confidenceLevel": "Low | Medium | High",
  "riskSignals": ["string"],
  "summary": "string"
}
riskSignals lists indicators of hesitation, uncertainty, objections, delays, dissatisfaction, legal, financial, or delivery concerns; include inferred risks if clearly implied by tone or wording.

Transcript:
"""
%[2]s
"""

Rules for riskSignals:
- Include explicit risks mentioned in the conversation
- ALSO include implicit risks if the speaker shows hesitation, concern, pushback, uncertainty, or resistance
- Do NOT invent risks that are not reasonably implied
- If no risks are present, return an empty array
`
