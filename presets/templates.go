// Package presets carries the built-in enrichment prompt templates and
// resolves which template a given configuration selects.
//
// The template texts are treated as stable assets: changing them would
// break A/B comparisons across deployments.
package presets

// Built-in template ids. Positive ids refer to the host's prompt
// repository.
const (
	PromptIDDefault        = 0
	PromptIDBasic          = -1
	PromptIDDigCompFewShot = -2
	PromptIDGeneralFewShot = -3
)

// Template is a named prompt template. Content uses literal
// {placeholder} substitution with {context}, {original_statement} and
// {length}.
type Template struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Content string `json:"content"`
}

const DefaultTemplate = `You are helping personalize digital competency statements.

User profile: {context}

Rewrite the following statement so that it reflects the user's daily work, tools and responsibilities, while keeping its original meaning:

"{original_statement}"

Requirements:
- Keep the first-person form.
- Stay close to {length} characters.
- Use concrete examples from the user's domain where natural.
- Do not add competencies that the original statement does not claim.

Return only the rewritten statement.`

const BasicTemplate = `User profile: {context}

Rewrite this statement in a personalized way, keeping its meaning and the first-person form, in about {length} characters:

"{original_statement}"

Return only the rewritten statement.`

const DigCompFewShotTemplate = `You personalize DigComp competency statements for professionals.

User profile: {context}

Examples:

Statement: "I know how to search for information online."
Profile: Job Role: nurse, Job Domain: healthcare
Personalized: "I know how to look up clinical guidelines and medication information in online medical databases during my shifts."

Statement: "I can protect my devices from threats."
Profile: Job Role: accountant, Job Domain: finance
Personalized: "I can keep the firm's laptops and client spreadsheets safe by recognizing phishing mail and keeping our accounting software updated."

Now personalize the following statement for this user. Keep the original meaning and the first-person form, target about {length} characters, and return only the rewritten statement.

Statement: "{original_statement}"`

const GeneralFewShotTemplate = `You adapt generic skill statements to a person's professional context.

User profile: {context}

Examples of the expected rewriting style:

Generic: "I can communicate with others using digital tools."
Rewritten: "I coordinate with my project team every day through chat, video calls and shared documents."

Generic: "I can solve technical problems."
Rewritten: "When our point-of-sale terminal misbehaves, I can usually diagnose and fix it before it affects customers."

Rewrite the statement below for this user. Preserve its meaning, keep the first person, aim for about {length} characters, and return only the rewritten statement.

Statement: "{original_statement}"`

var builtinTemplates = map[int]Template{
	PromptIDDefault:        {ID: PromptIDDefault, Name: "default", Content: DefaultTemplate},
	PromptIDBasic:          {ID: PromptIDBasic, Name: "basic", Content: BasicTemplate},
	PromptIDDigCompFewShot: {ID: PromptIDDigCompFewShot, Name: "digcomp_few_shot", Content: DigCompFewShotTemplate},
	PromptIDGeneralFewShot: {ID: PromptIDGeneralFewShot, Name: "general_few_shot", Content: GeneralFewShotTemplate},
}

// BuiltinTemplate returns the built-in template for the given id.
func BuiltinTemplate(id int) (Template, bool) {
	t, ok := builtinTemplates[id]
	return t, ok
}
