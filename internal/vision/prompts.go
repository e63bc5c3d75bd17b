package vision

// Prompts sent to the generative model. Kept verbatim in one place so policy
// reviews see exactly what the model is asked to do.

const identityPrompt = `You are extracting user identity details from official Indian documents (PAN card, Aadhaar card).
Strictly extract:
- Full Name
- PAN Number (if available)
- Aadhaar Number (if available)
- Phone Number (if available)

Output format (plain text):
Name: [full name]
PAN: [PAN number]
Aadhaar: [12-digit number]
Phone: [10-digit number]

If irrelevant or no values found, return only: "Invalid document"`

const financialExtractPrompt = `You are analyzing financial documents to evaluate a user's financial reliability.
Documents may include:
- Income Tax Returns (ITR)
- Electricity bills
- Gas bills
- Rent receipts
- Water bills
- Phone/Internet bills
- Bank statements
- Property tax receipts
- Insurance premium receipts

Extract:
- Document Type
- Amount
- Date
- Account Holder
- Outstanding Due
- Payment Consistency (if visible)

If invalid or irrelevant, respond with: "Invalid financial document"

Output:
Document Type: [type]
Amount: [amount]
Date: [date]
Account Holder: [name]
Outstanding Due: [yes/no]
Notes: [summary]`

const financialScorePrompt = `You are evaluating a user's financial reliability based on their submitted financial documents.

Scoring Guidelines (0-60):

- 50-60: User has submitted 3 or more valid and recent documents. Payments are consistent and on time. Documents are clearly legible and contain complete financial and personal information.

- 30-49: User has submitted 1-2 valid documents. There may be inconsistencies (e.g., partial data, outdated documents, or occasional late payments). Overall moderately reliable.

- 10-29: Documents are low-quality, outdated, or show irregular payments. Some documents may be hard to read, missing key details, or only partially relevant.

- 0-9: No valid documents submitted, or all are invalid, irrelevant, or unreadable.

Instructions:
Analyze the user's extracted document data below and assign a trust score between 0 and 60.

User's document data:
%s

Respond in the following format (plain text):
Score: [number 0-60]
Explanation: [brief explanation of reasoning]`

const facePrompt = `You are a strict identity verification AI.
I have provided two images:
1. A live selfie of a person.
2. An ID document (Passport, Aadhaar, PAN, etc.) containing a photo.

Task: Compare the face in the live selfie with the face in the ID document.
Ignore differences in age, lighting, or hair style, but focus on facial structure (eyes, nose, jawline).

Output strictly in this JSON format (no markdown, no extra text):
{
    "match": boolean,
    "confidence": number_between_0_and_100,
    "reason": "short explanation of why they match or do not match"
}`
