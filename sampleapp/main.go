package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/anirudhraja/parcelite"
	"github.com/anirudhraja/parcelite/wire"
)

func main() {
	codec := parcelite.New()

	if err := codec.LoadDir("testdata"); err != nil {
		log.Fatalf("Failed to load schema descriptors: %v", err)
	}

	fmt.Println("Parcelite Sample App - Tagged Binary Objects")
	fmt.Println(strings.Repeat("=", 60))

	book := map[string]interface{}{
		"isbn":  "978-0-13-468599-1",
		"title": "The Little Parcel Book",
		"pages": int32(312),
		"price": "44.99",
		"tags":  []string{"serialization", "binary", "compat"},
		"cover": []byte{0x89, 0x50, 0x4E, 0x47},
		"publisher": map[string]interface{}{
			"name":    "Northbank Press",
			"country": "NZ",
		},
		"chapter_offsets": map[int32]int32{1: 0, 2: 24, 3: 61},
		"language":        "en",
	}

	encoded, err := codec.Marshal(book, "library.Book")
	if err != nil {
		log.Fatalf("Failed to marshal book: %v", err)
	}
	fmt.Printf("\nEncoded book: %d bytes\n", len(encoded))

	result, err := codec.Parse(encoded, "library.Book")
	if err != nil {
		log.Fatalf("Failed to parse book: %v", err)
	}
	fmt.Printf("Title: %s (%d pages)\n", result["title"], result["pages"])
	fmt.Printf("Price: %v, Tags: %v\n", result["price"], result["tags"])
	pub := result["publisher"].(map[string]interface{})
	fmt.Printf("Publisher: %s (%s)\n", pub["name"], pub["country"])

	demonstrateNullVersusAbsent(codec)
	demonstrateCompatibility(codec)
	demonstrateTranscoding(codec, encoded)
}

// demonstrateNullVersusAbsent shows the three states a field can be in:
// a value, an explicit null, and absent with a declared default.
func demonstrateNullVersusAbsent(codec *parcelite.Parcelite) {
	fmt.Println("\n" + strings.Repeat("-", 60))
	fmt.Println("Null vs absent")

	// cover is declared write_if_absent, language has a default.
	minimal := map[string]interface{}{
		"isbn":  "978-1-59327-000-0",
		"title": "Bare Minimum",
		"pages": int32(10),
	}

	encoded, err := codec.Marshal(minimal, "library.Book")
	if err != nil {
		log.Fatalf("Failed to marshal minimal book: %v", err)
	}
	fmt.Printf("Encoded minimal book: %d bytes\n", len(encoded))

	result, err := codec.Parse(encoded, "library.Book")
	if err != nil {
		log.Fatalf("Failed to parse minimal book: %v", err)
	}

	fmt.Printf("cover: %v (explicit null marker on the wire)\n", result["cover"])
	fmt.Printf("tags: %v (absent, decoded to the kind's zero)\n", result["tags"])
	fmt.Printf("language: %q (absent, declared default substituted)\n", result["language"])
}

// demonstrateCompatibility decodes data produced by an old writer whose
// schema carried the page count as a string under the retired id 7.
func demonstrateCompatibility(codec *parcelite.Parcelite) {
	fmt.Println("\n" + strings.Repeat("-", 60))
	fmt.Println("Removed-param migration")

	encoded, err := codec.Marshal(map[string]interface{}{
		"isbn":      "978-0-201-03801-1",
		"title":     "From The Archives",
		"pages_str": "586",
	}, "library_v1.Book")
	if err != nil {
		log.Fatalf("Failed to marshal legacy book: %v", err)
	}

	result, err := codec.Parse(encoded, "library.Book")
	if err != nil {
		log.Fatalf("Failed to parse legacy book: %v", err)
	}
	fmt.Printf("Legacy pages field migrated: %v (%T)\n", result["pages"], result["pages"])
}

// demonstrateTranscoding rewrites the parcel as deterministic CBOR and
// back.
func demonstrateTranscoding(codec *parcelite.Parcelite, encoded []byte) {
	fmt.Println("\n" + strings.Repeat("-", 60))
	fmt.Println("CBOR transcoding")

	obj, err := codec.GetRegistry().GetObject("library.Book")
	if err != nil {
		log.Fatalf("Failed to look up schema: %v", err)
	}

	doc, err := wire.TranscodeToCBOR(encoded, obj, codec.GetRegistry())
	if err != nil {
		log.Fatalf("Failed to transcode to CBOR: %v", err)
	}
	back, err := wire.TranscodeFromCBOR(doc, obj, codec.GetRegistry())
	if err != nil {
		log.Fatalf("Failed to transcode from CBOR: %v", err)
	}

	fmt.Printf("parcel: %d bytes, CBOR: %d bytes, round trip: %d bytes\n",
		len(encoded), len(doc), len(back))
}
