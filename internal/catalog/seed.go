package catalog

import "github.com/Skotchmaster/biblion/internal/models"

func ptr[T any](v T) *T { return &v }

// Seed returns the storefront catalog. Callers get a fresh copy each time.
func Seed() []models.Book {
	return []models.Book{
		{
			ID: 1, Title: "The Midnight Library", Author: "Matt Haig",
			Price: 14.99, OriginalPrice: ptr(24.99), Rating: 4.5, Reviews: 12453,
			Cover: "/covers/the-midnight-library.jpg", Category: "Fiction", Badge: ptr("Bestseller"),
			Description: "Between life and death there is a library, and within that library the shelves go on forever. Every book provides a chance to try another life you could have lived.",
			FileURL:     ptr("https://cdn.biblion.example/epub/the-midnight-library.epub"), FileType: ptr(models.FileTypeEPUB),
		},
		{
			ID: 2, Title: "Atomic Habits", Author: "James Clear",
			Price: 16.99, OriginalPrice: ptr(27.00), Rating: 4.8, Reviews: 28934,
			Cover: "/covers/atomic-habits.jpg", Category: "Self-Help", Badge: ptr("Top Rated"),
			Description: "An easy and proven way to build good habits and break bad ones. Tiny changes, remarkable results.",
			FileURL:     ptr("https://cdn.biblion.example/pdf/atomic-habits.pdf"), FileType: ptr(models.FileTypePDF),
		},
		{
			ID: 3, Title: "The Silent Patient", Author: "Alex Michaelides",
			Price: 12.99, Rating: 4.3, Reviews: 18234,
			Cover: "/covers/the-silent-patient.jpg", Category: "Mystery",
			Description: "Alicia Berenson shoots her husband five times and never speaks another word. A criminal psychotherapist is determined to find out why.",
		},
		{
			ID: 4, Title: "Project Hail Mary", Author: "Andy Weir",
			Price: 18.99, OriginalPrice: ptr(28.99), Rating: 4.7, Reviews: 15678,
			Cover: "/covers/project-hail-mary.jpg", Category: "Sci-Fi", Badge: ptr("New"),
			Description: "A lone astronaut wakes up with no memory and must save humanity from an extinction-level threat.",
			FileURL:     ptr("https://cdn.biblion.example/epub/project-hail-mary.epub"), FileType: ptr(models.FileTypeEPUB),
		},
		{
			ID: 5, Title: "Educated", Author: "Tara Westover",
			Price: 15.99, Rating: 4.6, Reviews: 21345,
			Cover: "/covers/educated.jpg", Category: "Biography",
			Description: "A memoir about a young woman who leaves her survivalist family in Idaho and goes on to earn a PhD from Cambridge University.",
		},
		{
			ID: 6, Title: "Beach Read", Author: "Emily Henry",
			Price: 11.99, Rating: 4.2, Reviews: 9876,
			Cover: "/covers/beach-read.jpg", Category: "Romance",
			Description: "A romance writer who no longer believes in love and a literary writer stuck in a rut swap genres for one summer.",
		},
		{
			ID: 7, Title: "Sapiens", Author: "Yuval Noah Harari",
			Price: 19.99, OriginalPrice: ptr(24.99), Rating: 4.6, Reviews: 32456,
			Cover: "/covers/sapiens.jpg", Category: "History", Badge: ptr("Award Winner"),
			Description: "A brief history of humankind, from the first humans to walk the earth to the breakthroughs of the cognitive, agricultural and scientific revolutions.",
			FileURL:     ptr("https://cdn.biblion.example/pdf/sapiens.pdf"), FileType: ptr(models.FileTypePDF),
		},
		{
			ID: 8, Title: "Where the Crawdads Sing", Author: "Delia Owens",
			Price: 13.99, Rating: 4.7, Reviews: 41234,
			Cover: "/covers/where-the-crawdads-sing.jpg", Category: "Fiction",
			Description: "For years, rumors of the Marsh Girl have haunted Barkley Cove. A coming-of-age story and a murder mystery set in the marshes of North Carolina.",
		},
		{
			ID: 9, Title: "Dune", Author: "Frank Herbert",
			Price: 10.99, Rating: 4.5, Reviews: 50213,
			Cover: "/covers/dune.jpg", Category: "Sci-Fi", Badge: ptr("Classic"),
			Description: "Set on the desert planet Arrakis, the story of Paul Atreides and the struggle for the most valuable substance in the universe.",
		},
		{
			ID: 10, Title: "Thinking, Fast and Slow", Author: "Daniel Kahneman",
			Price: 17.49, Rating: 4.4, Reviews: 19870,
			Cover: "/covers/thinking-fast-and-slow.jpg", Category: "Non-Fiction",
			Description: "A tour of the mind that explains the two systems that drive the way we think, fast and intuitive or slow and deliberate.",
		},
		{
			ID: 11, Title: "Gone Girl", Author: "Gillian Flynn",
			Price: 12.49, Rating: 4.1, Reviews: 35120,
			Cover: "/covers/gone-girl.jpg", Category: "Mystery",
			Description: "On their fifth wedding anniversary Nick Dunne's wife Amy disappears, and every clue points back at him.",
		},
		{
			ID: 12, Title: "Becoming", Author: "Michelle Obama",
			Price: 20.99, OriginalPrice: ptr(32.50), Rating: 4.8, Reviews: 45780,
			Cover: "/covers/becoming.jpg", Category: "Biography",
			Description: "An intimate memoir by the former First Lady of the United States, from her childhood on the South Side of Chicago to the White House.",
		},
		{
			ID: 13, Title: "The Wright Brothers", Author: "David McCullough",
			Price: 16.49, Rating: 4.4, Reviews: 8123,
			Cover: "/covers/the-wright-brothers.jpg", Category: "History",
			Description: "The dramatic story of the two brothers who taught the world how to fly.",
		},
		{
			ID: 14, Title: "Quiet", Author: "Susan Cain",
			Price: 14.49, Rating: 4.5, Reviews: 11234,
			Cover: "/covers/quiet.jpg", Category: "Non-Fiction",
			Description: "The power of introverts in a world that can't stop talking.",
		},
		{
			ID: 15, Title: "The Seven Husbands of Evelyn Hugo", Author: "Taylor Jenkins Reid",
			Price: 12.99, Rating: 4.6, Reviews: 38456,
			Cover: "/covers/the-seven-husbands-of-evelyn-hugo.jpg", Category: "Romance", Badge: ptr("Bestseller"),
			Description: "An aging Hollywood icon finally tells the truth about her glamorous and scandalous life.",
		},
		{
			ID: 16, Title: "The Psychology of Money", Author: "Morgan Housel",
			Price: 15.49, Rating: 4.7, Reviews: 16789,
			Cover: "/covers/the-psychology-of-money.jpg", Category: "Self-Help",
			Description: "Timeless lessons on wealth, greed and happiness, told through short stories about how people think about money.",
		},
		{
			ID: 17, Title: "Alice's Adventures in Wonderland", Author: "Lewis Carroll",
			Price: 4.99, Rating: 4.3, Reviews: 6543,
			Cover: "/covers/alice.jpg", Category: "Fiction", Badge: ptr("Free Preview"),
			Description: "Alice follows a white rabbit down a rabbit hole into a world of curious creatures and impossible logic.",
			FileURL:     ptr("/books/alice.epub"), FileType: ptr(models.FileTypeEPUB),
		},
	}
}
