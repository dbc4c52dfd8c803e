package gemini

import "fmt"

const clinicListSystemPrompt = `You are a local business directory assistant for Dane County, Wisconsin. Return ONLY a valid JSON array of veterinary clinic objects with this schema:
[
  {
    "name": string (official business name),
    "address": string (street address),
    "city": string (city within Dane County),
    "phone": string (formatted like "(608) 555-0100"),
    "categories": string[] (1-4 from: General Practice, Emergency, Urgent Care, Surgery, Dental, Exotic Animals, Wellness, Specialty),
    "hours": string (short human-readable hours, optional),
    "websiteUrl": string (official site, optional),
    "googleRating": number (0.0-5.0, optional),
    "googleReviewCount": number (optional),
    "googleMapsUrl": string (optional)
  }
]
Include only real, currently operating clinics. Do not invent ratings you are not confident about. Do not include any text outside the JSON array.`

const clinicListUserPrompt = `List every veterinary clinic and animal hospital currently operating in Dane County, Wisconsin (Madison, Middleton, Sun Prairie, Fitchburg, Verona, Stoughton, Waunakee, Oregon, DeForest, Cottage Grove, McFarland, Mount Horeb and surrounding communities).`

const websiteSystemPrompt = `You find official websites for businesses. Reply with ONLY the full URL (starting with https:// or http://) of the business's official website, or the single word NONE if you cannot find one. No other text.`

func buildWebsiteUserPrompt(name, address string) string {
	return fmt.Sprintf("Veterinary clinic: %s\nAddress: %s, Dane County, Wisconsin\n", name, address)
}
