// Package sangga provides an AI-assisted collector for commercial real-estate
// listings. Users describe what they are looking for (region, category, deal
// type, deposit and rent ranges) and a grounded language model returns a
// structured list of matching listings that can be browsed and exported.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., gemini/, bloom/, csv/).
package sangga
