package schematic

// Two fixtures covering both generations of the on-disk format: KiCad 6
// (space-indented, bare hide flags, unquoted generator) and KiCad 9
// (tab-indented, (hide yes) lists, quoted strings everywhere). Each holds
// three symbol instances (R1, C1, U1), a local and a global label on the
// same net, and a populated title block.

const fixtureV6 = `(kicad_sch (version 20211123) (generator eeschema)

  (uuid 7f4e4c71-2aae-4556-a2d4-a2e05e3c2f4e)

  (paper "A4")

  (title_block
    (title "Test Schematic")
    (date "2024-01-15")
    (rev "A")
    (company "OpenTraceLab")
  )

  (lib_symbols
    (symbol "Device:R" (pin_numbers hide) (pin_names (offset 0)) (in_bom yes) (on_board yes)
      (property "Reference" "R" (id 0) (at 2.032 0 90)
        (effects (font (size 1.27 1.27)))
      )
      (property "Value" "R" (id 1) (at 0 0 90)
        (effects (font (size 1.27 1.27)))
      )
    )
  )

  (junction (at 95.25 73.66) (diameter 0) (color 0 0 0 0)
    (uuid 8d2f09b6-6cb8-43b5-9a46-d67c4a9c9e01)
  )

  (wire (pts (xy 95.25 73.66) (xy 100.33 73.66))
    (stroke (width 0) (type default) (color 0 0 0 0))
    (uuid 1c0b1c0e-64f1-44a2-8e38-e6fc39ad1b5a)
  )

  (label "SPI1_SCK" (at 95.25 73.66 0)
    (effects (font (size 1.27 1.27)) (justify left bottom))
    (uuid 3b8a1d31-5587-4f44-9f02-0ac9f5d1a7aa)
  )

  (global_label "SPI1_SCK" (shape input) (at 120.65 73.66 0)
    (effects (font (size 1.27 1.27)) (justify left))
    (uuid 5b2f3c84-90b2-47fd-8e0a-6f8b9b1f2f3c)
  )

  (symbol (lib_id "Device:R") (at 100.33 80.01 0) (mirror x) (unit 1)
    (in_bom yes) (on_board yes) (dnp yes)
    (uuid 9c3f7e4d-9f44-4d38-a2b7-55f8a1f7b0d2)
    (property "Reference" "R1" (id 0) (at 102.87 78.7406 0)
      (effects (font (size 1.27 1.27)) (justify left))
    )
    (property "Value" "10k" (id 1) (at 102.87 81.28 0)
      (effects (font (size 1.27 1.27)) (justify left))
    )
    (property "Footprint" "Resistor_SMD:R_0603_1608Metric" (id 2) (at 0 0 90)
      (effects (font (size 1.27 1.27)) hide)
    )
    (property "Datasheet" "~" (id 3) (at 0 0 0)
      (effects (font (size 1.27 1.27)) hide)
    )
    (pin "1" (uuid 52e7c1a4-90d9-41c1-90fb-0ab3e5ef1a77))
    (pin "2" (uuid 0f0ed4cb-b44e-44b6-9e60-15e3e3f0c2bb))
  )

  (symbol (lib_id "Device:C") (at 120.65 80.01 0) (unit 1)
    (in_bom yes) (on_board yes)
    (uuid c1f1d6a7-3c6a-4d68-8b5e-2d1f3e5a7c90)
    (property "Reference" "C1" (id 0) (at 123.19 78.7406 0)
      (effects (font (size 1.27 1.27)) (justify left))
    )
    (property "Value" "100nF" (id 1) (at 123.19 81.28 0)
      (effects (font (size 1.27 1.27)) (justify left))
    )
    (property "Footprint" "Capacitor_SMD:C_0603_1608Metric" (id 2) (at 0 0 0)
      (effects (font (size 1.27 1.27)) hide)
    )
  )

  (symbol (lib_id "MCU_ST_STM32F1:STM32F103C8Tx") (at 152.4 95.25 0) (unit 1)
    (in_bom yes) (on_board yes)
    (uuid 6d0cf5df-14b8-4ad6-9f0b-60372e21c5ea)
    (property "Reference" "U1" (id 0) (at 152.4 66.04 0)
      (effects (font (size 1.27 1.27)))
    )
    (property "Value" "STM32F103C8Tx" (id 1) (at 152.4 68.58 0)
      (effects (font (size 1.27 1.27)))
    )
    (property "Description" "path with \"quotes\"" (id 4) (at 0 0 0)
      (effects (font (size 1.27 1.27)) hide)
    )
  )

  (sheet_instances
    (path "/" (page "1"))
  )
)
`

const fixtureV9 = `(kicad_sch
	(version 20250114)
	(generator "eeschema")
	(generator_version "9.0")
	(uuid "f2a5a2bc-1c4e-4f59-8b3e-3e3f9e6f2a10")
	(paper "A4")
	(title_block
		(title "Test Schematic")
		(date "2024-01-15")
		(rev "A")
		(company "OpenTraceLab")
	)
	(lib_symbols
		(symbol "Device:R"
			(pin_numbers
				(hide yes)
			)
			(pin_names
				(offset 0)
			)
			(property "Reference" "R"
				(at 2.032 0 90)
				(effects
					(font
						(size 1.27 1.27)
					)
				)
			)
			(property "Value" "R"
				(at 0 0 90)
				(effects
					(font
						(size 1.27 1.27)
					)
				)
			)
		)
	)
	(junction
		(at 95.25 73.66)
		(diameter 0)
		(color 0 0 0 0)
		(uuid "22c42661-7f0c-4bbb-8e00-8a9f6a2b1c11")
	)
	(wire
		(pts
			(xy 95.25 73.66) (xy 100.33 73.66)
		)
		(stroke
			(width 0)
			(type default)
		)
		(uuid "8cbe7da4-11f4-45b5-a119-12a2e62b0a77")
	)
	(label "SPI1_SCK"
		(at 95.25 73.66 0)
		(effects
			(font
				(size 1.27 1.27)
			)
			(justify left bottom)
		)
		(uuid "b0ad0a4e-3cb5-4f0a-bd7c-9f51c4a5e1dd")
	)
	(global_label "SPI1_SCK"
		(shape input)
		(at 120.65 73.66 0)
		(effects
			(font
				(size 1.27 1.27)
			)
			(justify left)
		)
		(uuid "e7e2b9a4-4a0f-4c2f-9b38-0d71f42a8c55")
	)
	(symbol
		(lib_id "Device:R")
		(at 100.33 80.01 0)
		(mirror x)
		(unit 1)
		(exclude_from_sim no)
		(in_bom yes)
		(on_board yes)
		(dnp yes)
		(uuid "4f3e2d1c-0b9a-4817-a6c5-d4e3f2a1b0c9")
		(property "Reference" "R1"
			(at 102.87 78.7406 0)
			(effects
				(font
					(size 1.27 1.27)
				)
				(justify left)
			)
		)
		(property "Value" "10k"
			(at 102.87 81.28 0)
			(effects
				(font
					(size 1.27 1.27)
				)
				(justify left)
			)
		)
		(property "Footprint" "Resistor_SMD:R_0603_1608Metric"
			(at 0 0 90)
			(effects
				(font
					(size 1.27 1.27)
				)
				(hide yes)
			)
		)
		(property "Datasheet" "~"
			(at 0 0 0)
			(effects
				(font
					(size 1.27 1.27)
				)
				(hide yes)
			)
		)
		(pin "1"
			(uuid "11aa22bb-33cc-44dd-9ee0-ff0011223344")
		)
		(pin "2"
			(uuid "55aa66bb-77cc-48dd-9ee1-ff5566778899")
		)
	)
	(symbol
		(lib_id "Device:C")
		(at 120.65 80.01 0)
		(unit 1)
		(exclude_from_sim no)
		(in_bom yes)
		(on_board yes)
		(dnp no)
		(uuid "0a1b2c3d-4e5f-4071-8293-a4b5c6d7e8f9")
		(property "Reference" "C1"
			(at 123.19 78.7406 0)
			(effects
				(font
					(size 1.27 1.27)
				)
				(justify left)
			)
		)
		(property "Value" "100nF"
			(at 123.19 81.28 0)
			(effects
				(font
					(size 1.27 1.27)
				)
				(justify left)
			)
		)
		(property "Footprint" "Capacitor_SMD:C_0603_1608Metric"
			(at 0 0 0)
			(effects
				(font
					(size 1.27 1.27)
				)
				(hide yes)
			)
		)
	)
	(symbol
		(lib_id "MCU_ST_STM32F1:STM32F103C8Tx")
		(at 152.4 95.25 0)
		(unit 1)
		(exclude_from_sim no)
		(in_bom yes)
		(on_board yes)
		(dnp no)
		(uuid "99887766-5544-4332-a110-ffeeddccbbaa")
		(property "Reference" "U1"
			(at 152.4 66.04 0)
			(effects
				(font
					(size 1.27 1.27)
				)
			)
		)
		(property "Value" "STM32F103C8Tx"
			(at 152.4 68.58 0)
			(effects
				(font
					(size 1.27 1.27)
				)
			)
		)
		(property "Description" "path with \"quotes\""
			(at 0 0 0)
			(effects
				(font
					(size 1.27 1.27)
				)
				(hide yes)
			)
		)
	)
	(sheet_instances
		(path "/"
			(page "1")
		)
	)
)
`

// fixtures maps a subtest name to fixture content for parametrized tests.
var fixtures = map[string]string{
	"v6": fixtureV6,
	"v9": fixtureV9,
}
