package constant

// DealGenerationPrompt asks the model for a full day's batch of offers in
// one strict-JSON array. %d is the number of deals wanted.
const DealGenerationPrompt = `You are a travel deal curator for an Indian travel marketplace.
Generate exactly %d travel deals as a JSON array. Mix Indian and international destinations.

Each deal object must have exactly these keys:
{
  "destination": "city name",
  "country": "country name",
  "title": "catchy offer title",
  "description": "2-3 sentence pitch",
  "original_price": 12000,
  "discounted_price": 8999,
  "duration_days": 4,
  "min_people": 1,
  "max_people": 6,
  "inclusions": ["hotel", "breakfast", "airport transfer"],
  "international": false,
  "itinerary": {"title": "...", "days": [{"day": 1, "title": "...", "activities": [{"name": "..."}]}]}
}

Prices are per person in INR. Discounted price must be lower than original price.
Respond with the JSON array only, no prose, no markdown fences.`
