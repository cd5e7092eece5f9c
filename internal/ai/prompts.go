package ai

const ocrSystemPrompt = `You are an OCR engine for retail bills and receipts.
Transcribe every line of text visible in the image, top to bottom, one line of
output per printed line. Preserve item names, quantities, and prices exactly as
printed. Do not summarize, translate, or add commentary.`

const classifySystemPrompt = "You are a smart shopping assistant. Your job is to categorize grocery and shopping items accurately."

const classifyPromptTemplate = `
The following items were extracted from a shopping bill:
%s

Please categorize each item into one of these categories: %s.

Also clean up the item names (remove extra spaces, fix spelling if obvious).

Return ONLY a JSON array with this structure:
[
  {"name": "cleaned item name", "quantity": "extracted quantity", "price": price_as_number, "category": "category"}
]

Do not include any explanation, just the JSON array.
`

const listSystemPrompt = "You are a smart shopping assistant that helps create budget-friendly shopping lists."

const listPromptTemplate = `
Create a monthly shopping list for a budget of ₹%.0f.

User's frequently purchased items: %s

Generate a practical shopping list with essential items. Return ONLY a JSON array:
[
  {"name": "item name", "category": "category", "estimated_price": price, "quantity": "qty"}
]

Categories: %s.
Keep total under budget. No explanation, just JSON.
`
