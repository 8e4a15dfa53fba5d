// internal/gemini/prompts.go
package gemini

// This file stores the prompt text sent to the model. The replies to
// classifyPrompt and suggestPromptFmt are expected to be JSON only; the
// parsers in parse.go still treat every reply as untrusted input.

const classifyPrompt = `You are a classification assistant. Respond with valid JSON ONLY - no extra text or formatting.
Return exactly this structure: {"fruits": number, "vegetables": number, "grains": number, "protein": number, "dairy": number, "oils": number}.
Each value must be a decimal between 0.0 and 1.0 (inclusive), representing the fraction that this single meal contributes toward that food group's TOTAL WEEKLY recommended intake.

Weekly Recommended Intake Guidelines:
1. Fruits: adults should aim for 1.5 to 2 cups daily, totaling 10.5 to 14 cups weekly.
2. Vegetables: 14 to 21 cups weekly total (dark-green 1.5, red/orange 5.5, legumes 1.5, starchy 5, other 4).
3. Grains: 5 to 8 ounce-equivalents daily, totaling 35 to 56 ounces weekly; at least half whole grains.
4. Protein Foods: 5 to 6.5 ounce-equivalents daily, 35 to 45.5 ounces weekly (seafood 8, meats/poultry/eggs 26, nuts/seeds/soy 5).
5. Dairy: 3 cups daily, totaling 21 cups weekly.
6. Oils: use in moderation; prefer healthy oils such as olive or canola.

For each food group, estimate how much of the weekly target this meal provides.
For example, if an average serving of mixed vegetables is 0.5 cup and the weekly target is 14 cups, then that serving is 0.5/14 = 0.04.
Do NOT round prematurely; use at least two decimal places.`

const foodNamePrompt = `You are a food recognition assistant. Look at the attached image and provide a brief description of the main food item in one or two words. For example: 'kale salad', 'spaghetti', 'chicken sandwich'. If unsure, say 'a meal'.`

const tipPromptFmt = `You are a helpful nutrition assistant. The user just logged a meal called %q with these food group fractions, where each fraction is the portion of that group's weekly target:
%s

Provide a short (1-2 sentence) tip that:
1) Mentions the food by name and praises its healthy qualities (e.g., if the vegetables fraction is high, praise that).
2) Suggests a complementary action or food (e.g., drink water afterward).
3) Does not include any JSON - just plain, friendly advice.`

const suggestPromptFmt = `You are a recommendation assistant. Respond with valid JSON ONLY - no extra text or formatting.
Return exactly this structure: {"recommendations": ["suggestion1", "suggestion2"]}.

The user's cumulative weekly intake fractions (each between 0.0 and 1.0, where 1.0 means the weekly goal is met) are:
%s

The groups still below their weekly goal are: %s.

Considering the weekly targets (Fruits: 10.5-14 cups, Vegetables: 14-21 cups, Grains: 35-56 ounces, Protein: 35-45.5 ounces, Dairy: 21 cups, Oils: healthy oils in moderation), suggest one short, specific food or meal per listed group that will help reach 100%% of that group's weekly goal. Output only the JSON object.`
