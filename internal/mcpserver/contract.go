package mcpserver

// RecipeFormatContract describes the canonical recipe document shape that
// LLM consumers should follow when creating or updating recipes.
const RecipeFormatContract = `# Wunjo Recipe Format Contract

Every recipe stored in Wunjo is a JSON document with this canonical shape.

## Structure

` + "```" + `json
{
  "name": "Weeknight minestrone",          // REQUIRED - non-empty
  "course": ["dinner"],                     // array of tag strings
  "categories": ["soup", "vegetarian"],     // array of tag strings
  "servingSize": "4",
  "prepTime": "20 min",                     // "<n> hr" or "<n> min"
  "cookTime": "1 hr",
  "ingredients": ["1 onion, diced", "..."], // ordered array, one line each
  "directions": ["Saute the onion.", "..."],// ordered array, one step each
  "utensils": ["dutch oven"],
  "notes": "Freezes well.",
  "nutrition": {"calories": "320", "protein": "12g"},
  "imageUrl": "/images/1700000000000_minestrone.jpg",
  "source": "family cookbook",
  "isFavorite": false
}
` + "```" + `

## Rules

1. **name is required.** It is the primary display and search field.
2. **ingredients and directions are ordered arrays of non-empty lines.**
   Never a single newline-delimited string: older documents stored blobs and
   the server still accepts them, but new writes must use arrays. The
   create_recipe tool takes newline-delimited text and converts it for you.
3. **Time fields** are a single token plus a unit: "2 hr" or "30 min".
   Mixed values like "1 hr 30 min" are not representable.
4. **course and categories values** should come from the shared tag registry
   (see the list_tags tool); new tags are added by union and never removed.
5. **nutrition keys** are limited to: calories, fat, saturatedFat,
   cholesterol, sodium, carbs, fiber, sugar, protein. Values are free text.
6. **imageUrl** is optional; clients show a placeholder when it is empty.
`
