// Package prompt holds the generation prompt templates, with optional YAML
// overrides loaded from disk.
package prompt

// Template IDs recognized by the loader.
const (
	courseTemplateID = "course"
	quizTemplateID   = "quiz"
)

// defaultCourseTemplate asks for the exact JSON shape ParseCourse expects.
const defaultCourseTemplate = `You are an expert educational content creator. Your task is to create a comprehensive course on the topic: {{.Topic}}.
{{if .SearchContext}}
Here is some additional information from a web search:
{{.SearchContext}}
{{end}}
Please create a structured course with the following components:
1. Course Title
2. Description (1-2 paragraphs)
3. Learning Objectives (3-5 bullet points)
4. Introduction (3-4 paragraphs)
5. Main Topics (3-5 topics)
   - For each topic, provide:
     - Name
     - Content (2-3 paragraphs)
     - Subtopics (2-4 per topic), each with a name, content (1-2 paragraphs), and examples if applicable
6. Summary (1 paragraph)
7. Key Takeaways (3-5 bullet points)

Format your response as a single JSON object with this structure:
{
    "title": "string",
    "description": "string",
    "learning_objectives": ["string", ...],
    "introduction": "string",
    "topics": [
        {
            "name": "string",
            "content": "string",
            "subtopics": [
                {"name": "string", "content": "string", "examples": ["string", ...]}
            ],
            "examples": ["string", ...]
        }
    ],
    "summary": "string",
    "key_takeaways": ["string", ...]
}

Make sure the content is educational, accurate, and engaging.`

// defaultQuizTemplate asks for the exact JSON shape ParseQuiz expects.
const defaultQuizTemplate = `You are an expert educational quiz creator. Your task is to create a quiz for the following course content:

{{.CourseContext}}

Please create a quiz with {{.QuestionCount}} multiple-choice questions that:
1. Cover the key concepts from the course
2. Range from basic to advanced difficulty
3. Have exactly 4 answer choices per question with only one correct answer
4. Include a brief explanation for why the correct answer is right

Format your response as a single JSON object with this structure:
{
    "questions": [
        {
            "text": "string",
            "choices": ["string", "string", "string", "string"],
            "correct_index": 0,
            "explanation": "string"
        }
    ]
}

Make sure the questions test understanding rather than just memorization.`

// systemPrompt is the role message sent with every generation request.
const systemPrompt = "You are an expert educational content creator. Respond with a single JSON object and no other commentary."
