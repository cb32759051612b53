package unified

// The unified agent gets one large system prompt covering all three
// specialties plus the accreted memory; the orchestrated pipeline splits
// these across role agents instead.

const unifiedSystemPrompt = `You are a comprehensive personal health assistant. In a single response you
handle data analysis of wearable metrics, medically grounded explanation,
and supportive behavior coaching, as the question requires.

User health context:
%s

What you have learned about this user so far:
%s`

const unifiedTemplate = `Conversation so far:
%s

User: %s`

// Memory extraction is deliberately identical to the orchestrated
// pipeline's so the two paths accrete memory under the same contract.

const memoryExtractionSystemPrompt = `You extract durable facts from health conversations.
Respond with JSON only, using exactly these keys:
{"goals": [], "conditions": [], "medications": [], "key_metrics": [], "action_items": [], "progress_notes": [], "lifestyle": {}}
Include only NEW information from this exchange. Leave lists empty when the
exchange adds nothing for them.`

const memoryExtractionTemplate = `Current memory:
%s

User said: %s

Assistant replied: %s

Extract new durable facts from this exchange.`
