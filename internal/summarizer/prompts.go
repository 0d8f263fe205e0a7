package summarizer

import "fmt"

type promptPair struct {
	system string
	user   string
}

func stylePrompt(style Style, transcript string) promptPair {
	switch style {
	case StyleDetailed:
		return promptPair{
			system: "You are an expert summarizer. Create comprehensive, well-structured summaries.",
			user: fmt.Sprintf(`Create a detailed summary of this transcript with:
1. A brief overview (1-2 paragraphs)
2. Key points and main ideas (bullet points)
3. Important details or examples mentioned
4. Conclusion or takeaways

Transcript:
%s`, transcript),
		}
	case StyleBullet:
		return promptPair{
			system: "You are a summarizer who creates clear bullet-point summaries.",
			user:   fmt.Sprintf("Create a bullet-point summary of the main ideas in this transcript:\n\n%s", transcript),
		}
	default:
		return promptPair{
			system: "You are a concise summarizer. Create brief, clear summaries.",
			user:   fmt.Sprintf("Summarize this transcript in 2-3 paragraphs, focusing on the key points:\n\n%s", transcript),
		}
	}
}

func chaptersPrompt(transcript string) promptPair {
	return promptPair{
		system: "You are an expert at identifying logical sections in video transcripts.",
		user: fmt.Sprintf(`Analyze this timestamped transcript and identify logical chapters or sections.
For each chapter, provide:
1. Start timestamp
2. Chapter title
3. Brief description (1-2 sentences)

Format as:
[HH:MM:SS] Chapter Title
Description of what is covered in this section.

Transcript:
%s`, transcript),
	}
}

func chunkPlaceholder(index int) string {
	return fmt.Sprintf("[Summary of part %d could not be generated]", index)
}

const degradedNote = "Final combination of chunk summaries failed; showing the per-chunk summaries instead."
