package test_test

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/loopcontext/poproject"
	"github.com/loopcontext/poproject/test"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

const header = `msgid ""
msgstr ""
"Language: es\n"
"Plural-Forms: nplurals=2; plural=(n != 1);\n"
`

const app1Catalog = header + `
#: app1/templates/index.html:3
msgid "Hello"
msgstr ""

#: app1/templates/about.html:7
msgid "About"
msgstr ""

#: app1/views.py:12
#, fuzzy
msgid "Welcome back"
msgstr "Bienvenido"

#: app1/views.py:20
msgid "Logout"
msgstr "Salir"
`

const generalCatalog = header + `
#: templates/base.html:1
msgid "Site"
msgstr ""
`

var _ = Describe("PO Project", func() {
	var (
		tree     *test.Tree
		workflow poproject.Workflow
		ctx      context.Context
	)

	read := func(rel string) string {
		content, err := tree.Read(rel)
		Expect(err).NotTo(HaveOccurred())
		return content
	}

	BeforeEach(func() {
		var err error
		tree, err = test.NewTree()
		Expect(err).NotTo(HaveOccurred())
		Expect(tree.Write(test.Catalog("app1", "es"), app1Catalog)).To(Succeed())
		Expect(tree.Write(test.Catalog("locale", "es"), generalCatalog)).To(Succeed())

		nop := zerolog.Nop()
		workflow, err = poproject.NewWorkflow(poproject.Config{
			BaseDir:      tree.Root,
			LanguageCode: "en",
			Languages:    []poproject.Language{{Code: "en"}, {Code: "es"}},
			Apps:         []poproject.App{{Name: "app1"}},
			Logger:       &nop,
		})
		Expect(err).NotTo(HaveOccurred())
		ctx = context.Background()
	})

	AfterEach(func() {
		Expect(tree.Remove()).To(Succeed())
	})

	Context("tagging", func() {
		It("should tag untranslated and fuzzy entries only", func() {
			report, err := workflow.Tag(ctx, poproject.TagOptions{Locale: "es", Project: "jdoe_2022"})
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Catalogs[0].Entries).To(Equal([]string{"Hello", "About", "Welcome back"}))
			Expect(report.Catalogs[1].Entries).To(Equal([]string{"Site"}))
			Expect(read(test.Catalog("app1", "es"))).NotTo(ContainSubstring("#. project=jdoe_2022\n#: app1/views.py:20"))
		})

		It("should tag nothing on a second run", func() {
			_, err := workflow.Tag(ctx, poproject.TagOptions{Locale: "es", Project: "jdoe_2022"})
			Expect(err).NotTo(HaveOccurred())
			report, err := workflow.Tag(ctx, poproject.TagOptions{Locale: "es", Project: "jdoe_2023"})
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Total()).To(Equal(0))
			Expect(read(test.Catalog("app1", "es"))).NotTo(ContainSubstring("jdoe_2023"))
		})

		It("should only tag entries occurring in the filtered file", func() {
			report, err := workflow.Tag(ctx, poproject.TagOptions{
				Locale:   "es",
				Project:  "jdoe_2022",
				FileName: "app1/templates/index.html",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Catalogs).To(HaveLen(1))
			Expect(report.Catalogs[0].Entries).To(Equal([]string{"Hello"}))
			Expect(read(test.Catalog("locale", "es"))).To(Equal(generalCatalog))
		})

		It("should reject a filter naming an unknown app", func() {
			_, err := workflow.Tag(ctx, poproject.TagOptions{Locale: "es", FileName: "shop/views.py"})
			Expect(errors.Is(err, poproject.ErrUnknownApp)).To(BeTrue())
			Expect(poproject.KindOf(err)).To(Equal(poproject.KindValidation))
		})

		It("should reject the source language", func() {
			_, err := workflow.Tag(ctx, poproject.TagOptions{Locale: "en"})
			Expect(errors.Is(err, poproject.ErrUnsupportedLocale)).To(BeTrue())
			Expect(read(test.Catalog("app1", "es"))).To(Equal(app1Catalog))
		})
	})

	Context("extracting", func() {
		It("should never include entries of another project", func() {
			Expect(tree.Write(test.Catalog("app1", "es"), header+`
#. project=P1
msgid "One"
msgstr ""

#. project=P2
msgid "Two"
msgstr ""
`)).To(Succeed())

			report, err := workflow.Extract(ctx, poproject.ExtractOptions{Locale: "es", Project: "P1"})
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Total()).To(Equal(1))
			extracted := read(test.ProjectCatalog("app1", "es", "P1"))
			Expect(extracted).To(ContainSubstring(`msgid "One"`))
			Expect(extracted).NotTo(ContainSubstring(`msgid "Two"`))
			Expect(extracted).To(ContainSubstring(`"Language: es\n"`))
			Expect(tree.Exists(test.ProjectCatalog("locale", "es", "P1"))).To(BeFalse())
		})
	})

	Context("merging", func() {
		BeforeEach(func() {
			Expect(tree.Write(test.Catalog("app1", "es"), header+`
#. project=jdoe_2022
#: app1/templates/index.html:3
msgid "Hello"
msgstr ""
`)).To(Succeed())
		})

		It("should copy the translation of a tagged entry", func() {
			Expect(tree.Write("hello.po", header+"\n#. project=jdoe_2022\nmsgid \"Hello\"\nmsgstr \"Hola\"\n")).To(Succeed())

			report, err := workflow.Merge(ctx, poproject.MergeOptions{
				App: "app1", Locale: "es", Project: "jdoe_2022", File: tree.Path("hello.po"),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Warnings).To(BeEmpty())
			Expect(report.AffectedFiles).To(Equal([]string{"app1/templates/index.html"}))
			Expect(read(test.Catalog("app1", "es"))).To(ContainSubstring("msgid \"Hello\"\nmsgstr \"Hola\"\n"))
		})

		It("should skip and warn about entries of another project", func() {
			Expect(tree.Write("foreign.po", header+"\nmsgid \"Hello\"\nmsgstr \"Hola\"\n")).To(Succeed())

			report, err := workflow.Merge(ctx, poproject.MergeOptions{
				App: "app1", Locale: "es", Project: "jdoe_2022", File: tree.Path("foreign.po"),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Warnings).To(ConsistOf("Entry [Hello] is not part of this project, so it will be ignored!"))
			Expect(read(test.Catalog("app1", "es"))).To(ContainSubstring("msgid \"Hello\"\nmsgstr \"\"\n"))
		})

		It("should fail before writing when the input file is missing", func() {
			_, err := workflow.Merge(ctx, poproject.MergeOptions{
				App: "app1", Locale: "es", Project: "jdoe_2022", File: tree.Path("missing.po"),
			})
			Expect(errors.Is(err, poproject.ErrInputNotFound)).To(BeTrue())
		})
	})

	Context("cleaning", func() {
		It("should remove only the matching tag line", func() {
			Expect(tree.Write(test.Catalog("app1", "es"), header+`
#. project=jdoe_2022
#. project=jdoe_2023
msgid "Hello"
msgstr ""
`)).To(Succeed())

			_, err := workflow.Clean(ctx, poproject.CleanOptions{Locale: "es", Project: "jdoe_2022"})
			Expect(err).NotTo(HaveOccurred())
			content := read(test.Catalog("app1", "es"))
			Expect(content).To(ContainSubstring("#. project=jdoe_2023\nmsgid \"Hello\""))
			Expect(content).NotTo(ContainSubstring("jdoe_2022"))
		})
	})

	Context("round trip", func() {
		It("should restore the catalogs after tag, extract, merge and clean", func() {
			_, err := workflow.Tag(ctx, poproject.TagOptions{Locale: "es", Project: "rt"})
			Expect(err).NotTo(HaveOccurred())
			_, err = workflow.Extract(ctx, poproject.ExtractOptions{Locale: "es", Project: "rt"})
			Expect(err).NotTo(HaveOccurred())

			for _, app := range []string{"app1", poproject.RootApp} {
				report, err := workflow.Merge(ctx, poproject.MergeOptions{
					App: app, Locale: "es", Project: "rt", File: tree.Path(test.ProjectCatalog(app, "es", "rt")),
				})
				Expect(err).NotTo(HaveOccurred())
				Expect(report.Unmatched).To(BeEmpty())
			}

			_, err = workflow.Clean(ctx, poproject.CleanOptions{Locale: "es", Project: "rt"})
			Expect(err).NotTo(HaveOccurred())
			Expect(read(test.Catalog("app1", "es"))).To(Equal(app1Catalog))
			Expect(read(test.Catalog("locale", "es"))).To(Equal(generalCatalog))
			Expect(strings.Contains(read(test.Catalog("app1", "es")), "project=")).To(BeFalse())
			Expect(tree.Exists(test.ProjectCatalog("app1", "es", "rt"))).To(BeFalse())
		})
	})
})
