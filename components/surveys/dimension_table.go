package surveys

// dimensionTableColumns is the column count: dimension actions, dimension fi,
// dimension en, value actions, value fi, value en.
const dimensionTableColumns = 6

// DimensionTable is the view model of the dimensions editor table.
type DimensionTable struct {
	Headers         []string
	Groups          []DimensionRowGroup
	AddDimension    ModalButton
	ColumnCount     int
	CountDimensions int
	CountValues     int
	Footer          string
}

// RowCount returns the number of body rows, excluding the add-dimension row.
func (t DimensionTable) RowCount() int {
	total := 0
	for _, group := range t.Groups {
		total += len(group.Rows)
	}
	return total
}

// DimensionRowGroup is the contiguous block of rows owned by one dimension.
type DimensionRowGroup struct {
	Dimension Dimension
	Rows      []DimensionRow
}

// DimensionRow is one <tr>. Dimension is set on the first row of the block
// only; Value is set on value rows; AddValue is set on the row that offers the
// add-value control.
type DimensionRow struct {
	Key       string
	Dimension *DimensionCells
	Value     *ValueCells
	AddValue  *ModalButton
	// Standalone marks the single row of a dimension without values.
	Standalone bool
}

// DimensionCells are the row-spanning cells of a dimension.
type DimensionCells struct {
	RowSpan int
	Delete  ModalButton
	Edit    ModalButton
	TitleFi string
	TitleEn string
}

// ValueCells are the cells of one value row.
type ValueCells struct {
	Delete          ModalButton
	Edit            ModalButton
	TitleFi         string
	TitleEn         string
	BackgroundColor string
}

// DimensionTableOptions configures BuildDimensionTable.
type DimensionTableOptions struct {
	Scope    SurveyScope
	BasePath string
	Messages Messages
}

// BuildDimensionTable maps dimensions to table rows. A dimension with n values
// contributes n value rows plus a trailing add-value row, its own cells
// spanning all n+1 of them; a dimension without values contributes a single
// row holding its cells and the add-value control.
func BuildDimensionTable(dimensions []Dimension, opts DimensionTableOptions) DimensionTable {
	t := opts.Messages
	mc := modalContext{basePath: opts.BasePath, locale: t.Locale(), messages: t}
	dimensionLabel := t.Get("survey.attributes.dimension")
	valueLabel := t.Get("survey.attributes.value")

	table := DimensionTable{
		Headers: []string{
			dimensionLabel,
			dimensionLabel + " (fi)",
			dimensionLabel + " (en)",
			valueLabel,
			valueLabel + " (fi)",
			valueLabel + " (en)",
		},
		Groups:          make([]DimensionRowGroup, 0, len(dimensions)),
		ColumnCount:     dimensionTableColumns,
		CountDimensions: len(dimensions),
		CountValues:     CountValues(dimensions),
	}
	for _, dimension := range dimensions {
		table.Groups = append(table.Groups, buildRowGroup(mc, opts.Scope, dimension))
	}

	add := mc.button(CreateDimensionAction(opts.Scope), t.Get("survey.actions.add_dimension"))
	add.Icon = iconAdd
	add.Label = t.Get("survey.actions.add_dimension")
	add.Fields = DimensionFormFields(t, add.ID, nil)
	table.AddDimension = add

	table.Footer = t.Format("survey.dimension_table_footer", map[string]any{
		"dimensions": table.CountDimensions,
		"values":     table.CountValues,
	})
	return table
}

func buildRowGroup(mc modalContext, scope SurveyScope, dimension Dimension) DimensionRowGroup {
	cells := dimensionCells(mc, scope, dimension)
	addValue := addValueButton(mc, scope, dimension)
	group := DimensionRowGroup{Dimension: dimension}

	if len(dimension.Values) == 0 {
		group.Rows = []DimensionRow{{
			Key:        dimension.Slug,
			Dimension:  &cells,
			AddValue:   &addValue,
			Standalone: true,
		}}
		return group
	}

	group.Rows = make([]DimensionRow, 0, len(dimension.Values)+1)
	for idx, value := range dimension.Values {
		valueCells := buildValueCells(mc, scope, dimension, value)
		row := DimensionRow{
			Key:   dimension.Slug + "." + value.Slug,
			Value: &valueCells,
		}
		if idx == 0 {
			row.Dimension = &cells
		}
		group.Rows = append(group.Rows, row)
	}
	group.Rows = append(group.Rows, DimensionRow{
		Key:      dimension.Slug + ".__add__",
		AddValue: &addValue,
	})
	return group
}

func dimensionCells(mc modalContext, scope SurveyScope, dimension Dimension) DimensionCells {
	t := mc.messages
	confirmation := t.Format("survey.actions.delete_dimension.confirmation", map[string]any{
		"dimension": dimension.DisplayTitle(),
	})
	edit := mc.button(UpdateDimensionAction(scope, dimension.Slug), t.Get("survey.actions.edit_dimension"))
	edit.Icon = iconEdit
	edit.Code = dimension.Slug
	edit.Fields = DimensionFormFields(t, edit.ID, &dimension)

	return DimensionCells{
		RowSpan: len(dimension.Values) + 1,
		Delete: mc.deleteButton(
			DeleteDimensionAction(scope, dimension.Slug),
			dimension.CanRemove,
			"survey.actions.delete_dimension.title",
			"survey.actions.delete_dimension.cannot_remove",
			confirmation,
		),
		Edit:    edit,
		TitleFi: dimension.TitleFi,
		TitleEn: dimension.TitleEn,
	}
}

func buildValueCells(mc modalContext, scope SurveyScope, dimension Dimension, value DimensionValue) ValueCells {
	t := mc.messages
	confirmation := t.Format("survey.actions.delete_dimension_value.confirmation", map[string]any{
		"dimension": dimension.DisplayTitle(),
		"value":     value.DisplayTitle(),
	})
	edit := mc.button(UpdateDimensionValueAction(scope, dimension.Slug, value.Slug), t.Get("survey.actions.edit_dimension_value"))
	edit.Icon = iconEdit
	edit.Code = value.Slug
	edit.Fields = ValueFormFields(t, edit.ID, &value)

	return ValueCells{
		Delete: mc.deleteButton(
			DeleteDimensionValueAction(scope, dimension.Slug, value.Slug),
			value.CanRemove,
			"survey.actions.delete_dimension_value.title",
			"survey.actions.delete_dimension_value.cannot_remove",
			confirmation,
		),
		Edit:            edit,
		TitleFi:         value.TitleFi,
		TitleEn:         value.TitleEn,
		BackgroundColor: MakeColorTranslucent(value.Color),
	}
}

func addValueButton(mc modalContext, scope SurveyScope, dimension Dimension) ModalButton {
	t := mc.messages
	button := mc.button(CreateDimensionValueAction(scope, dimension.Slug), t.Get("survey.actions.add_dimension_value"))
	button.Icon = iconAdd
	button.Label = t.Get("survey.actions.add_dimension_value")
	button.Fields = ValueFormFields(t, button.ID, nil)
	return button
}
